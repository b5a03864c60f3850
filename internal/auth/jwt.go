package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	jwtSecret       string
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 168 * time.Hour
)

// TokenPair is the login response payload: a short-lived access token
// and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func Init(secret string, accessTTL, refreshTTL time.Duration) error {
	if secret == "" {
		return fmt.Errorf("JWT secret is not set")
	}

	jwtSecret = secret

	if accessTTL > 0 {
		accessTokenTTL = accessTTL
	}

	if refreshTTL > 0 {
		refreshTokenTTL = refreshTTL
	}

	return nil
}

func GenerateTokenPair(userID uint, username string) (TokenPair, error) {
	access, err := signToken(jwt.MapClaims{
		"user_id":    userID,
		"username":   username,
		"token_type": "access",
		"exp":        time.Now().Add(accessTokenTTL).Unix(),
	})

	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := signToken(jwt.MapClaims{
		"user_id":    userID,
		"username":   username,
		"token_type": "refresh",
		"jti":        uuid.New().String(),
		"exp":        time.Now().Add(refreshTokenTTL).Unix(),
	})

	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func VerifyJWT(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	return token, nil
}

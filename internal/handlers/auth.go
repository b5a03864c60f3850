package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskforge-dev/taskforge/db"
	"github.com/taskforge-dev/taskforge/internal/auth"
	"github.com/taskforge-dev/taskforge/internal/logging"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/types"
)

type RegisterUserRequest struct {
	Username  string `json:"username" binding:"required,max=20"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
}

type LoginUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func RegisterUser(ctx *gin.Context) {
	var req RegisterUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	var existing models.User

	err := db.DB.Where("username = ?", req.Username).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"username": []string{"already exists"}})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Errorf("Database error when checking existing username: %v", err)
		internalError(ctx)
		return
	}

	err = db.DB.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"email": []string{"already exists"}})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Errorf("Database error when checking existing email: %v", err)
		internalError(ctx)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		logging.Logger.Errorf("Failed to hash password: %v", err)
		internalError(ctx)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
			return
		}
		logging.Logger.Errorf("Failed to create user: %v", err)
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewUserResponse(&user))
}

func LoginUser(ctx *gin.Context) {
	var req LoginUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	user, err := models.Authenticate(db.DB, req.Username, req.Password)

	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserNotFound), errors.Is(err, models.ErrWrongPassword):
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			logging.Logger.Errorf("Database error when authenticating user: %v", err)
			internalError(ctx)
		}
		return
	}

	pair, err := auth.GenerateTokenPair(user.ID, user.Username)

	if err != nil {
		logging.Logger.Errorf("Failed to generate token pair: %v", err)
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"refresh_token": pair.RefreshToken,
		"access_token":  pair.AccessToken,
	})
}

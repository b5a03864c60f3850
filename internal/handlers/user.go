package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskforge-dev/taskforge/db"
	"github.com/taskforge-dev/taskforge/internal/logging"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/types"
)

type UpdateUserRequest struct {
	Username  string `json:"username" binding:"omitempty,max=20"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"omitempty,min=8"`
	FirstName string `json:"first_name" binding:"omitempty,max=50"`
	LastName  string `json:"last_name" binding:"omitempty,max=50"`
}

func GetUser(ctx *gin.Context) {
	var user models.User

	if err := db.DB.First(&user, "id = ?", ctx.Param("user_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to fetch user: %v", err)
			internalError(ctx)
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(&user))
}

// UpdateUser applies a partial update: absent fields are left untouched.
func UpdateUser(ctx *gin.Context) {
	var user models.User

	if err := db.DB.First(&user, "id = ?", ctx.Param("user_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to fetch user: %v", err)
			internalError(ctx)
		}
		return
	}

	var req UpdateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	updates := make(map[string]interface{})

	if req.Username != "" {
		username := strings.TrimSpace(req.Username)

		if username != user.Username {
			var existing models.User
			err := db.DB.Where("username = ? AND id != ?", username, user.ID).First(&existing).Error
			if err == nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"username": []string{"already exists"}})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logging.Logger.Errorf("Database error when checking existing username: %v", err)
				internalError(ctx)
				return
			}
		}

		updates["username"] = username
	}

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))

		if email != user.Email {
			var existing models.User
			err := db.DB.Where("email = ? AND id != ?", email, user.ID).First(&existing).Error
			if err == nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"email": []string{"already exists"}})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logging.Logger.Errorf("Database error when checking existing email: %v", err)
				internalError(ctx)
				return
			}
		}

		updates["email"] = email
	}

	if req.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logging.Logger.Errorf("Failed to hash password: %v", err)
			internalError(ctx)
			return
		}
		updates["password_hash"] = string(passwordHash)
	}

	if req.FirstName != "" {
		updates["first_name"] = strings.TrimSpace(req.FirstName)
	}

	if req.LastName != "" {
		updates["last_name"] = strings.TrimSpace(req.LastName)
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		logging.Logger.Errorf("Failed to update user: %v", err)
		internalError(ctx)
		return
	}

	if err := db.DB.First(&user, user.ID).Error; err != nil {
		logging.Logger.Errorf("Failed to refresh user data: %v", err)
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(&user))
}

func DeleteUser(ctx *gin.Context) {
	var user models.User

	if err := db.DB.First(&user, "id = ?", ctx.Param("user_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to fetch user: %v", err)
			internalError(ctx)
		}
		return
	}

	// Hard delete so the database cascades to owned projects,
	// memberships and comments.
	if err := db.DB.Unscoped().Delete(&user).Error; err != nil {
		logging.Logger.Errorf("Failed to delete user: %v", err)
		internalError(ctx)
		return
	}

	ctx.Status(http.StatusNoContent)
}

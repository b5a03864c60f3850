package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/taskforge-dev/taskforge/db"
	"github.com/taskforge-dev/taskforge/internal/logging"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/types"
	"github.com/taskforge-dev/taskforge/internal/utils"
)

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
	TaskID  uint   `json:"task_id"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func loadTask(ctx *gin.Context) (*models.Task, bool) {
	var task models.Task

	if err := db.DB.First(&task, "id = ?", ctx.Param("task_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve task: %v", err)
			internalError(ctx)
		}
		return nil, false
	}

	return &task, true
}

// CreateComment serves both POST /comments and POST /tasks/:task_id/comments.
// The author is always the authenticated user.
func CreateComment(ctx *gin.Context) {
	var req CreateCommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID := req.TaskID

	if ctx.Param("task_id") != "" {
		task, ok := loadTask(ctx)
		if !ok {
			return
		}
		taskID = task.ID
	} else {
		var task models.Task
		if err := db.DB.First(&task, "id = ?", taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusBadRequest, gin.H{"task_id": []string{"not found"}})
			} else {
				logging.Logger.Errorf("Failed to retrieve task: %v", err)
				internalError(ctx)
			}
			return
		}
	}

	comment := models.Comment{
		Content: req.Content,
		UserID:  userID,
		TaskID:  taskID,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		logging.Logger.Errorf("Failed to create comment: %v", err)
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewCommentResponse(&comment))
}

// ListComments serves both GET /comments and GET /tasks/:task_id/comments.
func ListComments(ctx *gin.Context) {
	query := db.DB

	if ctx.Param("task_id") != "" {
		task, ok := loadTask(ctx)
		if !ok {
			return
		}
		query = query.Where("task_id = ?", task.ID)
	}

	var comments []models.Comment

	if err := query.Find(&comments).Error; err != nil {
		logging.Logger.Errorf("Failed to retrieve comments: %v", err)
		internalError(ctx)
		return
	}

	response := make([]types.CommentResponse, 0, len(comments))

	for i := range comments {
		response = append(response, types.NewCommentResponse(&comments[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetComment(ctx *gin.Context) {
	var comment models.Comment

	if err := db.DB.First(&comment, "id = ?", ctx.Param("comment_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve comment: %v", err)
			internalError(ctx)
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewCommentResponse(&comment))
}

func UpdateComment(ctx *gin.Context) {
	var comment models.Comment

	if err := db.DB.First(&comment, "id = ?", ctx.Param("comment_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve comment: %v", err)
			internalError(ctx)
		}
		return
	}

	var req UpdateCommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	comment.Content = req.Content

	if err := db.DB.Save(&comment).Error; err != nil {
		logging.Logger.Errorf("Failed to update comment: %v", err)
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, types.NewCommentResponse(&comment))
}

func DeleteComment(ctx *gin.Context) {
	var comment models.Comment

	if err := db.DB.First(&comment, "id = ?", ctx.Param("comment_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve comment: %v", err)
			internalError(ctx)
		}
		return
	}

	if err := db.DB.Unscoped().Delete(&comment).Error; err != nil {
		logging.Logger.Errorf("Failed to delete comment: %v", err)
		internalError(ctx)
		return
	}

	ctx.Status(http.StatusNoContent)
}

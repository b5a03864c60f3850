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

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type ChangeOwnerRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"name": []string{"a project with this name already exists or the user already owns a project"}})
			return
		}
		logging.Logger.Errorf("Failed to create project: %v", err)
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewProjectResponse(&project))
}

func ListProjects(ctx *gin.Context) {
	var projects []models.Project

	if err := db.DB.Find(&projects).Error; err != nil {
		logging.Logger.Errorf("Failed to retrieve projects: %v", err)
		internalError(ctx)
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, types.NewProjectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	var project models.Project

	if err := db.DB.First(&project, "id = ?", ctx.Param("project_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve project: %v", err)
			internalError(ctx)
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectResponse(&project))
}

func UpdateProject(ctx *gin.Context) {
	var project models.Project

	if err := db.DB.First(&project, "id = ?", ctx.Param("project_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve project: %v", err)
			internalError(ctx)
		}
		return
	}

	var req UpdateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	project.Name = req.Name
	project.Description = req.Description

	if err := db.DB.Save(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"name": []string{"a project with this name already exists"}})
			return
		}
		logging.Logger.Errorf("Failed to update project: %v", err)
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectResponse(&project))
}

func DeleteProject(ctx *gin.Context) {
	var project models.Project

	if err := db.DB.First(&project, "id = ?", ctx.Param("project_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve project: %v", err)
			internalError(ctx)
		}
		return
	}

	// Hard delete so members, tasks and their comments cascade.
	if err := db.DB.Unscoped().Delete(&project).Error; err != nil {
		logging.Logger.Errorf("Failed to delete project: %v", err)
		internalError(ctx)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ChangeProjectOwner transfers the project to another user. The new
// owner is not required to be a member of the project.
func ChangeProjectOwner(ctx *gin.Context) {
	var project models.Project

	if err := db.DB.First(&project, "id = ?", ctx.Param("project_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve project: %v", err)
			internalError(ctx)
		}
		return
	}

	var req ChangeOwnerRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	var user models.User

	if err := db.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"user_id": []string{"not found"}})
		} else {
			logging.Logger.Errorf("Failed to retrieve user: %v", err)
			internalError(ctx)
		}
		return
	}

	if err := project.ChangeOwner(db.DB, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"user_id": []string{"this user already owns a project"}})
			return
		}
		logging.Logger.Errorf("Failed to change project owner: %v", err)
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectResponse(&project))
}

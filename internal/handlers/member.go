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
)

type CreateProjectMemberRequest struct {
	UserID uint        `json:"user_id" binding:"required"`
	Role   models.Role `json:"role" binding:"omitempty,oneof=Admin Member"`
}

type UpdateProjectMemberRequest struct {
	Role models.Role `json:"role" binding:"required,oneof=Admin Member"`
}

func loadProject(ctx *gin.Context) (*models.Project, bool) {
	var project models.Project

	if err := db.DB.First(&project, "id = ?", ctx.Param("project_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve project: %v", err)
			internalError(ctx)
		}
		return nil, false
	}

	return &project, true
}

func ListProjectMembers(ctx *gin.Context) {
	project, ok := loadProject(ctx)

	if !ok {
		return
	}

	var members []models.ProjectMember

	if err := db.DB.Where("project_id = ?", project.ID).Find(&members).Error; err != nil {
		logging.Logger.Errorf("Failed to retrieve project members: %v", err)
		internalError(ctx)
		return
	}

	response := make([]types.ProjectMemberResponse, 0, len(members))

	for i := range members {
		response = append(response, types.NewProjectMemberResponse(&members[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateProjectMember(ctx *gin.Context) {
	project, ok := loadProject(ctx)

	if !ok {
		return
	}

	var req CreateProjectMemberRequest

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

	member := models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      models.RoleMember,
	}

	if err := db.DB.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"duplicate_error": models.ErrDuplicateMember.Error()})
			return
		}
		logging.Logger.Errorf("Failed to create project member: %v", err)
		internalError(ctx)
		return
	}

	// Admin requests go through MakeAdmin so any existing admin is
	// demoted in the same transaction.
	if req.Role == models.RoleAdmin {
		if err := member.MakeAdmin(db.DB); err != nil {
			logging.Logger.Errorf("Failed to promote project member: %v", err)
			internalError(ctx)
			return
		}
	}

	ctx.JSON(http.StatusCreated, types.NewProjectMemberResponse(&member))
}

func GetProjectMember(ctx *gin.Context) {
	var member models.ProjectMember

	err := db.DB.Where("id = ? AND project_id = ?",
		ctx.Param("member_id"), ctx.Param("project_id")).First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve project member: %v", err)
			internalError(ctx)
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectMemberResponse(&member))
}

func UpdateProjectMember(ctx *gin.Context) {
	var member models.ProjectMember

	err := db.DB.Where("id = ? AND project_id = ?",
		ctx.Param("member_id"), ctx.Param("project_id")).First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve project member: %v", err)
			internalError(ctx)
		}
		return
	}

	var req UpdateProjectMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	if req.Role == models.RoleAdmin {
		if err := member.MakeAdmin(db.DB); err != nil {
			logging.Logger.Errorf("Failed to promote project member: %v", err)
			internalError(ctx)
			return
		}
	} else if member.Role != models.RoleMember {
		if err := db.DB.Model(&member).Update("role", models.RoleMember).Error; err != nil {
			logging.Logger.Errorf("Failed to update project member: %v", err)
			internalError(ctx)
			return
		}
	}

	ctx.JSON(http.StatusOK, types.NewProjectMemberResponse(&member))
}

func DeleteProjectMember(ctx *gin.Context) {
	var member models.ProjectMember

	err := db.DB.Where("id = ? AND project_id = ?",
		ctx.Param("member_id"), ctx.Param("project_id")).First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve project member: %v", err)
			internalError(ctx)
		}
		return
	}

	// Hard delete so the member's assigned tasks cascade.
	if err := db.DB.Unscoped().Delete(&member).Error; err != nil {
		logging.Logger.Errorf("Failed to delete project member: %v", err)
		internalError(ctx)
		return
	}

	ctx.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/taskforge-dev/taskforge/db"
	"github.com/taskforge-dev/taskforge/internal/logging"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/types"
)

type CreateTaskRequest struct {
	Title        string              `json:"title" binding:"required,max=100"`
	Status       models.TaskStatus   `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' 'Done'"`
	Priority     models.TaskPriority `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	AssignedToID uint                `json:"assigned_to" binding:"required"`
	ProjectID    uint                `json:"project_id"`
	DueDate      time.Time           `json:"due_date" binding:"required"`
}

type UpdateTaskRequest struct {
	Title        string              `json:"title" binding:"omitempty,max=100"`
	Status       models.TaskStatus   `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' 'Done'"`
	Priority     models.TaskPriority `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	AssignedToID uint                `json:"assigned_to"`
	DueDate      *time.Time          `json:"due_date"`
}

// writeTaskError maps a failed task save to its API payload. The
// assignment check runs before the insert, so an out-of-project
// assignee is reported even when the title would also collide.
func writeTaskError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidAssignment):
		ctx.JSON(http.StatusBadRequest, gin.H{"not_project_member_error": models.ErrInvalidAssignment.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		ctx.JSON(http.StatusBadRequest, gin.H{"title": []string{models.ErrDuplicateTitle.Error()}})
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// The assignee is checked before the insert, so a foreign key
		// violation here can only be the project.
		ctx.JSON(http.StatusBadRequest, gin.H{"project_id": []string{"not found"}})
	default:
		logging.Logger.Errorf("Failed to save task: %v", err)
		internalError(ctx)
	}
}

// CreateTask serves both POST /tasks and POST /projects/:project_id/tasks.
// On the nested route the project comes from the path, otherwise the
// body must carry project_id.
func CreateTask(ctx *gin.Context) {
	var req CreateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	projectID := req.ProjectID

	if ctx.Param("project_id") != "" {
		project, ok := loadProject(ctx)
		if !ok {
			return
		}
		projectID = project.ID
	}

	if projectID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"project_id": []string{"this field is required"}})
		return
	}

	task := models.Task{
		Title:        req.Title,
		Status:       models.TaskStatusToDo,
		Priority:     models.TaskPriorityHigh,
		AssignedToID: req.AssignedToID,
		ProjectID:    projectID,
		DueDate:      req.DueDate,
	}

	if req.Status != "" {
		task.Status = req.Status
	}

	if req.Priority != "" {
		task.Priority = req.Priority
	}

	if err := db.DB.Create(&task).Error; err != nil {
		writeTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskResponse(&task))
}

// ListTasks serves both GET /tasks and GET /projects/:project_id/tasks.
func ListTasks(ctx *gin.Context) {
	query := db.DB

	if ctx.Param("project_id") != "" {
		project, ok := loadProject(ctx)
		if !ok {
			return
		}
		query = query.Where("project_id = ?", project.ID)
	}

	var tasks []models.Task

	if err := query.Find(&tasks).Error; err != nil {
		logging.Logger.Errorf("Failed to retrieve tasks: %v", err)
		internalError(ctx)
		return
	}

	response := make([]types.TaskResponse, 0, len(tasks))

	for i := range tasks {
		response = append(response, types.NewTaskResponse(&tasks[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetTask(ctx *gin.Context) {
	var task models.Task

	if err := db.DB.First(&task, "id = ?", ctx.Param("task_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve task: %v", err)
			internalError(ctx)
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(&task))
}

func UpdateTask(ctx *gin.Context) {
	var task models.Task

	if err := db.DB.First(&task, "id = ?", ctx.Param("task_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve task: %v", err)
			internalError(ctx)
		}
		return
	}

	var req UpdateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	if req.Title != "" {
		task.Title = req.Title
	}

	if req.Status != "" {
		task.Status = req.Status
	}

	if req.Priority != "" {
		task.Priority = req.Priority
	}

	if req.AssignedToID != 0 {
		task.AssignedToID = req.AssignedToID
	}

	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}

	// Save runs the assignment check again, so reassigning to an
	// out-of-project member is rejected here too.
	if err := db.DB.Save(&task).Error; err != nil {
		writeTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(&task))
}

func DeleteTask(ctx *gin.Context) {
	var task models.Task

	if err := db.DB.First(&task, "id = ?", ctx.Param("task_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			logging.Logger.Errorf("Failed to retrieve task: %v", err)
			internalError(ctx)
		}
		return
	}

	// Hard delete so the task's comments cascade.
	if err := db.DB.Unscoped().Delete(&task).Error; err != nil {
		logging.Logger.Errorf("Failed to delete task: %v", err)
		internalError(ctx)
		return
	}

	ctx.Status(http.StatusNoContent)
}

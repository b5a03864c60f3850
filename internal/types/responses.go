package types

import (
	"time"

	"github.com/taskforge-dev/taskforge/internal/models"
)

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
}

type ProjectResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint      `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProjectResponse(project *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
	}
}

type ProjectMemberResponse struct {
	ID        uint        `json:"id"`
	ProjectID uint        `json:"project_id"`
	UserID    uint        `json:"user_id"`
	Role      models.Role `json:"role"`
}

func NewProjectMemberResponse(member *models.ProjectMember) ProjectMemberResponse {
	return ProjectMemberResponse{
		ID:        member.ID,
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      member.Role,
	}
}

type TaskResponse struct {
	ID           uint                `json:"id"`
	Title        string              `json:"title"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	AssignedToID uint                `json:"assigned_to"`
	ProjectID    uint                `json:"project_id"`
	CreatedAt    time.Time           `json:"created_at"`
	DueDate      time.Time           `json:"due_date"`
}

func NewTaskResponse(task *models.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Status:       task.Status,
		Priority:     task.Priority,
		AssignedToID: task.AssignedToID,
		ProjectID:    task.ProjectID,
		CreatedAt:    task.CreatedAt,
		DueDate:      task.DueDate,
	}
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	UserID    uint      `json:"user_id"`
	TaskID    uint      `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		UserID:    comment.UserID,
		TaskID:    comment.TaskID,
		CreatedAt: comment.CreatedAt,
	}
}

package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

type Task struct {
	gorm.Model

	Title        string       `gorm:"uniqueIndex;not null"`
	Status       TaskStatus   `gorm:"not null;default:'To Do'"`
	Priority     TaskPriority `gorm:"not null;default:High"`
	AssignedToID uint         `gorm:"not null;index"`
	ProjectID    uint         `gorm:"not null;index"`
	DueDate      time.Time    `gorm:"not null"`

	// Relationships
	AssignedTo ProjectMember `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project    Project       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments   []Comment     `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// BeforeSave guards every create and update: the assignee's membership
// must belong to the task's own project, otherwise the save is rejected
// with ErrInvalidAssignment and nothing is persisted.
func (t *Task) BeforeSave(tx *gorm.DB) error {
	var member ProjectMember

	if err := tx.First(&member, t.AssignedToID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidAssignment
		}
		return err
	}

	if member.ProjectID != t.ProjectID {
		return ErrInvalidAssignment
	}

	return nil
}

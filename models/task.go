package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskCancelled TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskOrder sorts high priority first, then by due date.
const TaskOrder = "CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, due_date"

type Task struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Title        string       `gorm:"size:200;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Status       TaskStatus   `gorm:"size:20;default:pending;index" json:"status"`
	Priority     TaskPriority `gorm:"size:20;default:medium" json:"priority"`
	AssignedToID *uint        `gorm:"index" json:"assigned_to"`
	AssignedTo   *User        `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"-"`
	DueDate      *Date        `gorm:"index" json:"due_date"`
	IsRecurring  bool         `gorm:"default:false" json:"is_recurring"`
	CompletedAt  *time.Time   `json:"completed_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	AssignedToName string `gorm:"-" json:"assigned_to_name"`
}

func (Task) TableName() string { return "tasks" }

func (t *Task) AfterFind(tx *gorm.DB) error {
	if t.AssignedTo != nil {
		t.AssignedToName = t.AssignedTo.FullName()
	}
	return nil
}

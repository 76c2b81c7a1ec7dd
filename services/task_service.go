package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"gorm.io/gorm"
)

type TaskService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{DB: db, Now: time.Now}
}

type TaskFields struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	Status       *models.TaskStatus   `json:"status"`
	Priority     *models.TaskPriority `json:"priority"`
	AssignedToID *uint                `json:"assigned_to"`
	DueDate      *models.Date         `json:"due_date"`
	IsRecurring  *bool                `json:"is_recurring"`
}

type TaskFilter struct {
	Status  models.TaskStatus
	DueDate *models.Date
}

func (s *TaskService) preloaded(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Preload("AssignedTo")
}

func (s *TaskService) List(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	q := s.preloaded(ctx)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DueDate != nil {
		q = q.Where("due_date = ?", *f.DueDate)
	}
	list := []models.Task{}
	if err := q.Order(models.TaskOrder).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %w", err)
	}
	return list, nil
}

// PendingDue lists pending tasks due on day; with overdue set it also
// includes earlier due dates. limit <= 0 means no limit.
func (s *TaskService) PendingDue(ctx context.Context, day models.Date, overdue bool, limit int) ([]models.Task, error) {
	q := s.preloaded(ctx).Where("status = ?", models.TaskPending)
	if overdue {
		q = q.Where("due_date <= ?", day)
	} else {
		q = q.Where("due_date = ?", day)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	list := []models.Task{}
	if err := q.Order(models.TaskOrder).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve due tasks: %w", err)
	}
	return list, nil
}

func (s *TaskService) Get(ctx context.Context, id uint) (*models.Task, error) {
	var t models.Task
	if err := s.preloaded(ctx).First(&t, id).Error; err != nil {
		return nil, wrapFind(err, "task", id)
	}
	return &t, nil
}

func (s *TaskService) Create(ctx context.Context, f TaskFields) (*models.Task, error) {
	t := models.Task{Status: models.TaskPending, Priority: models.PriorityMedium}
	if err := s.applyFields(ctx, &t, f); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Omit("AssignedTo").Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return s.Get(ctx, t.ID)
}

func (s *TaskService) Update(ctx context.Context, id uint, f TaskFields) (*models.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyFields(ctx, t, f); err != nil {
		return nil, err
	}
	t.AssignedTo = nil
	if err := s.DB.WithContext(ctx).Save(t).Error; err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return s.Get(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("task", id)
	}
	return nil
}

func (s *TaskService) applyFields(ctx context.Context, t *models.Task, f TaskFields) error {
	if f.Title != nil {
		t.Title = strings.TrimSpace(*f.Title)
	}
	if f.Description != nil {
		t.Description = *f.Description
	}
	if f.Priority != nil && *f.Priority != "" {
		t.Priority = *f.Priority
	}
	if f.DueDate != nil {
		if f.DueDate.IsZero() {
			t.DueDate = nil
		} else {
			d := *f.DueDate
			t.DueDate = &d
		}
	}
	if f.IsRecurring != nil {
		t.IsRecurring = *f.IsRecurring
	}
	if f.AssignedToID != nil {
		if *f.AssignedToID == 0 {
			t.AssignedToID = nil
		} else {
			var count int64
			if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", *f.AssignedToID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check assignee: %w", err)
			}
			if count == 0 {
				return invalid("user %d does not exist", *f.AssignedToID)
			}
			id := *f.AssignedToID
			t.AssignedToID = &id
		}
	}
	if f.Status != nil && *f.Status != "" {
		s.setStatus(t, *f.Status)
	}

	if t.Title == "" {
		return invalid("title is required")
	}
	if !t.Status.Valid() {
		return invalid("status must be one of pending, completed, cancelled")
	}
	if !t.Priority.Valid() {
		return invalid("priority must be one of low, medium, high")
	}
	return nil
}

// setStatus keeps completed_at in step with the status.
func (s *TaskService) setStatus(t *models.Task, status models.TaskStatus) {
	if status == t.Status {
		return
	}
	t.Status = status
	if status == models.TaskCompleted {
		now := s.Now().UTC()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}

// Complete marks a task completed and stamps completed_at.
func (s *TaskService) Complete(ctx context.Context, id uint) (*models.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.Now().UTC()
	err = s.DB.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       models.TaskCompleted,
		"completed_at": now,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to complete task %d: %w", t.ID, err)
	}
	return s.Get(ctx, id)
}

// Toggle flips a task between pending and completed.
func (s *TaskService) Toggle(ctx context.Context, id uint) (*models.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := models.TaskCompleted
	if t.Status == models.TaskCompleted {
		next = models.TaskPending
	}
	s.setStatus(t, next)
	err = s.DB.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       t.Status,
		"completed_at": t.CompletedAt,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to toggle task %d: %w", id, err)
	}
	log.Printf("Task #%d is now %s", id, t.Status)
	return s.Get(ctx, id)
}

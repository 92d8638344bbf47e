package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type CreateTaskInput struct {
	AccountID   uuid.UUID  `json:"account_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Priority    int        `json:"priority"`
	DueAt       *time.Time `json:"due_at"`
	VideoID     *uuid.UUID `json:"video_id"`
}

type UpdateTaskInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *int       `json:"priority"`
	Status      *string    `json:"status"`
	DueAt       *time.Time `json:"due_at"`
}

type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*types.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Task, error)
	List(ctx context.Context, filter repos.TaskFilter) ([]*types.Task, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateTaskInput) (*types.Task, error)
	Complete(ctx context.Context, id uuid.UUID) (*types.Task, error)
	// Snooze pushes the due date forward without touching status.
	Snooze(ctx context.Context, id uuid.UUID, until time.Time) (*types.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskService struct {
	db       *gorm.DB
	log      *logger.Logger
	now      clock
	taskRepo repos.TaskRepo
}

func NewTaskService(db *gorm.DB, log *logger.Logger, taskRepo repos.TaskRepo) TaskService {
	serviceLog := log.With("service", "TaskService")
	return &taskService{db: db, log: serviceLog, now: utcNow, taskRepo: taskRepo}
}

func (s *taskService) Create(ctx context.Context, input CreateTaskInput) (*types.Task, error) {
	if input.AccountID == uuid.Nil {
		return nil, apierr.Validation("account id is required")
	}
	if input.Title == "" {
		return nil, apierr.Validation("task title is required")
	}
	taskType := input.Type
	if taskType == "" {
		taskType = types.TaskTypeReminder
	}
	priority := input.Priority
	if priority == 0 {
		priority = 3
	}

	now := s.now()
	task := &types.Task{
		ID:          uuid.New(),
		AccountID:   input.AccountID,
		Title:       input.Title,
		Description: input.Description,
		Type:        taskType,
		Priority:    priority,
		Status:      types.TaskStatusPending,
		DueAt:       input.DueAt,
		VideoID:     input.VideoID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.taskRepo.Create(ctx, nil, []*types.Task{task}); err != nil {
		s.log.Error("Task creation failed", "error", err)
		return nil, apierr.Persistence(err)
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id uuid.UUID) (*types.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, "task %s not found", id)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, filter repos.TaskFilter) ([]*types.Task, error) {
	if filter.Status != "" && !types.ValidTaskStatus(filter.Status) {
		return nil, apierr.Validation("unknown task status %q", filter.Status)
	}
	tasks, err := s.taskRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return tasks, nil
}

func (s *taskService) Update(ctx context.Context, id uuid.UUID, patch UpdateTaskInput) (*types.Task, error) {
	if _, err := s.taskRepo.GetByID(ctx, nil, id); err != nil {
		return nil, notFoundOr(err, "task %s not found", id)
	}

	fields := map[string]interface{}{}
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, apierr.Validation("task title cannot be empty")
		}
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Priority != nil {
		fields["priority"] = *patch.Priority
	}
	if patch.Status != nil {
		if !types.ValidTaskStatus(*patch.Status) {
			return nil, apierr.Validation("unknown task status %q", *patch.Status)
		}
		fields["status"] = *patch.Status
		if *patch.Status == types.TaskStatusCompleted {
			now := s.now()
			fields["completed_at"] = &now
		} else {
			fields["completed_at"] = nil
		}
	}
	if patch.DueAt != nil {
		fields["due_at"] = patch.DueAt
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		if err := s.taskRepo.UpdateFields(ctx, nil, id, fields); err != nil {
			return nil, apierr.Persistence(err)
		}
	}

	task, err := s.taskRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return task, nil
}

func (s *taskService) Complete(ctx context.Context, id uuid.UUID) (*types.Task, error) {
	status := types.TaskStatusCompleted
	return s.Update(ctx, id, UpdateTaskInput{Status: &status})
}

func (s *taskService) Snooze(ctx context.Context, id uuid.UUID, until time.Time) (*types.Task, error) {
	return s.Update(ctx, id, UpdateTaskInput{DueAt: &until})
}

func (s *taskService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.taskRepo.GetByID(ctx, nil, id); err != nil {
		return notFoundOr(err, "task %s not found", id)
	}
	if err := s.taskRepo.DeleteByID(ctx, nil, id); err != nil {
		return apierr.Persistence(err)
	}
	return nil
}

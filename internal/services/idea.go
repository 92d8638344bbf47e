package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type CreateIdeaInput struct {
	AccountID   uuid.UUID  `json:"account_id"`
	FolderID    *uuid.UUID `json:"folder_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    int        `json:"priority"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags"`
}

type UpdateIdeaInput struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Priority    *int        `json:"priority"`
	Status      *string     `json:"status"`
	Tags        *[]string   `json:"tags"`
	FolderID    **uuid.UUID `json:"-"`
}

type IdeaService interface {
	Create(ctx context.Context, input CreateIdeaInput) (*types.Idea, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Idea, error)
	List(ctx context.Context, filter repos.IdeaFilter) ([]*types.Idea, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateIdeaInput) (*types.Idea, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ideaService struct {
	db       *gorm.DB
	log      *logger.Logger
	now      clock
	ideaRepo repos.IdeaRepo
}

func NewIdeaService(db *gorm.DB, log *logger.Logger, ideaRepo repos.IdeaRepo) IdeaService {
	serviceLog := log.With("service", "IdeaService")
	return &ideaService{db: db, log: serviceLog, now: utcNow, ideaRepo: ideaRepo}
}

func (s *ideaService) Create(ctx context.Context, input CreateIdeaInput) (*types.Idea, error) {
	if input.AccountID == uuid.Nil {
		return nil, apierr.Validation("account id is required")
	}
	if input.Title == "" {
		return nil, apierr.Validation("idea title is required")
	}
	priority := input.Priority
	if priority == 0 {
		priority = types.IdeaPriorityDefault
	}
	if priority < types.IdeaPriorityMin || priority > types.IdeaPriorityMax {
		return nil, apierr.Validation("priority must be between %d and %d", types.IdeaPriorityMin, types.IdeaPriorityMax)
	}
	status := input.Status
	if status == "" {
		status = types.IdeaStatusNew
	}
	if !types.ValidIdeaStatus(status) {
		return nil, apierr.Validation("unknown idea status %q", status)
	}

	now := s.now()
	idea := &types.Idea{
		ID:          uuid.New(),
		AccountID:   input.AccountID,
		FolderID:    input.FolderID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Status:      status,
		Tags:        jsonList(input.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.ideaRepo.Create(ctx, nil, []*types.Idea{idea}); err != nil {
		s.log.Error("Idea creation failed", "error", err)
		return nil, apierr.Persistence(err)
	}
	return idea, nil
}

func (s *ideaService) GetByID(ctx context.Context, id uuid.UUID) (*types.Idea, error) {
	idea, err := s.ideaRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, "idea %s not found", id)
	}
	return idea, nil
}

func (s *ideaService) List(ctx context.Context, filter repos.IdeaFilter) ([]*types.Idea, error) {
	if filter.Status != "" && !types.ValidIdeaStatus(filter.Status) {
		return nil, apierr.Validation("unknown idea status %q", filter.Status)
	}
	ideas, err := s.ideaRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return ideas, nil
}

func (s *ideaService) Update(ctx context.Context, id uuid.UUID, patch UpdateIdeaInput) (*types.Idea, error) {
	if _, err := s.ideaRepo.GetByID(ctx, nil, id); err != nil {
		return nil, notFoundOr(err, "idea %s not found", id)
	}

	fields := map[string]interface{}{}
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, apierr.Validation("idea title cannot be empty")
		}
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Priority != nil {
		if *patch.Priority < types.IdeaPriorityMin || *patch.Priority > types.IdeaPriorityMax {
			return nil, apierr.Validation("priority must be between %d and %d", types.IdeaPriorityMin, types.IdeaPriorityMax)
		}
		fields["priority"] = *patch.Priority
	}
	if patch.Status != nil {
		if !types.ValidIdeaStatus(*patch.Status) {
			return nil, apierr.Validation("unknown idea status %q", *patch.Status)
		}
		fields["status"] = *patch.Status
	}
	if patch.Tags != nil {
		fields["tags"] = jsonList(*patch.Tags)
	}
	if patch.FolderID != nil {
		fields["folder_id"] = *patch.FolderID
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		if err := s.ideaRepo.UpdateFields(ctx, nil, id, fields); err != nil {
			return nil, apierr.Persistence(err)
		}
	}

	idea, err := s.ideaRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return idea, nil
}

func (s *ideaService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ideaRepo.GetByID(ctx, nil, id); err != nil {
		return notFoundOr(err, "idea %s not found", id)
	}
	if err := s.ideaRepo.DeleteByID(ctx, nil, id); err != nil {
		return apierr.Persistence(err)
	}
	return nil
}

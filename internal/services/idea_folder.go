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

type IdeaFolderService interface {
	Create(ctx context.Context, accountID uuid.UUID, name string) (*types.IdeaFolder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.IdeaFolder, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*types.IdeaFolder, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*types.IdeaFolder, error)
	// Delete removes the folder and detaches its ideas; the ideas survive.
	Delete(ctx context.Context, id uuid.UUID) error
}

type ideaFolderService struct {
	db         *gorm.DB
	log        *logger.Logger
	now        clock
	folderRepo repos.IdeaFolderRepo
	ideaRepo   repos.IdeaRepo
}

func NewIdeaFolderService(db *gorm.DB, log *logger.Logger, folderRepo repos.IdeaFolderRepo, ideaRepo repos.IdeaRepo) IdeaFolderService {
	serviceLog := log.With("service", "IdeaFolderService")
	return &ideaFolderService{db: db, log: serviceLog, now: utcNow, folderRepo: folderRepo, ideaRepo: ideaRepo}
}

func (s *ideaFolderService) Create(ctx context.Context, accountID uuid.UUID, name string) (*types.IdeaFolder, error) {
	if accountID == uuid.Nil {
		return nil, apierr.Validation("account id is required")
	}
	if name == "" {
		return nil, apierr.Validation("folder name is required")
	}

	now := s.now()
	folder := &types.IdeaFolder{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.folderRepo.Create(ctx, nil, []*types.IdeaFolder{folder}); err != nil {
		return nil, apierr.Persistence(err)
	}
	return folder, nil
}

func (s *ideaFolderService) GetByID(ctx context.Context, id uuid.UUID) (*types.IdeaFolder, error) {
	folder, err := s.folderRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, "folder %s not found", id)
	}
	return folder, nil
}

func (s *ideaFolderService) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*types.IdeaFolder, error) {
	folders, err := s.folderRepo.ListByAccount(ctx, nil, accountID)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return folders, nil
}

func (s *ideaFolderService) Rename(ctx context.Context, id uuid.UUID, name string) (*types.IdeaFolder, error) {
	if name == "" {
		return nil, apierr.Validation("folder name cannot be empty")
	}
	if _, err := s.folderRepo.GetByID(ctx, nil, id); err != nil {
		return nil, notFoundOr(err, "folder %s not found", id)
	}
	if err := s.folderRepo.UpdateFields(ctx, nil, id, map[string]interface{}{
		"name":       name,
		"updated_at": s.now(),
	}); err != nil {
		return nil, apierr.Persistence(err)
	}
	folder, err := s.folderRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return folder, nil
}

func (s *ideaFolderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.folderRepo.GetByID(ctx, nil, id); err != nil {
		return notFoundOr(err, "folder %s not found", id)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.ideaRepo.ClearFolder(ctx, tx, id); err != nil {
			return err
		}
		return s.folderRepo.DeleteByID(ctx, tx, id)
	})
	if err != nil {
		return apierr.Persistence(err)
	}
	return nil
}

package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type IdeaFolderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, folders []*types.IdeaFolder) ([]*types.IdeaFolder, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.IdeaFolder, error)
	ListByAccount(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) ([]*types.IdeaFolder, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error
}

type ideaFolderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdeaFolderRepo(db *gorm.DB, baseLog *logger.Logger) IdeaFolderRepo {
	repoLog := baseLog.With("repo", "IdeaFolderRepo")
	return &ideaFolderRepo{db: db, log: repoLog}
}

func (r *ideaFolderRepo) Create(ctx context.Context, tx *gorm.DB, folders []*types.IdeaFolder) ([]*types.IdeaFolder, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(folders) == 0 {
		return []*types.IdeaFolder{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *ideaFolderRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.IdeaFolder, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.IdeaFolder
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ideaFolderRepo) ListByAccount(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) ([]*types.IdeaFolder, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.IdeaFolder
	if err := transaction.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ideaFolderRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.IdeaFolder{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *ideaFolderRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.IdeaFolder{}).Error
}

func (r *ideaFolderRepo) DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&types.IdeaFolder{}).Error
}

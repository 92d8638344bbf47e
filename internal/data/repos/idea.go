package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type IdeaFilter struct {
	AccountID uuid.UUID
	Status    string
	FolderID  *uuid.UUID
}

type IdeaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ideas []*types.Idea) ([]*types.Idea, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Idea, error)
	List(ctx context.Context, tx *gorm.DB, filter IdeaFilter) ([]*types.Idea, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error
	ClearFolder(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) error
}

type ideaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdeaRepo(db *gorm.DB, baseLog *logger.Logger) IdeaRepo {
	repoLog := baseLog.With("repo", "IdeaRepo")
	return &ideaRepo{db: db, log: repoLog}
}

func (r *ideaRepo) Create(ctx context.Context, tx *gorm.DB, ideas []*types.Idea) ([]*types.Idea, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ideas) == 0 {
		return []*types.Idea{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *ideaRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Idea, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Idea
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ideaRepo) List(ctx context.Context, tx *gorm.DB, filter IdeaFilter) ([]*types.Idea, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Model(&types.Idea{})
	if filter.AccountID != uuid.Nil {
		q = q.Where("account_id = ?", filter.AccountID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.FolderID != nil {
		q = q.Where("folder_id = ?", *filter.FolderID)
	}

	var results []*types.Idea
	if err := q.Order("priority DESC, created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ideaRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Idea{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *ideaRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Idea{}).Error
}

func (r *ideaRepo) DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&types.Idea{}).Error
}

// ClearFolder detaches ideas from a folder being deleted; the ideas
// themselves survive.
func (r *ideaRepo) ClearFolder(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Idea{}).
		Where("folder_id = ?", folderID).
		Update("folder_id", nil).Error
}

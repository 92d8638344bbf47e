package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type AccountRepo interface {
	Create(ctx context.Context, tx *gorm.DB, accounts []*types.Account) ([]*types.Account, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Account, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Account, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	repoLog := baseLog.With("repo", "AccountRepo")
	return &accountRepo{db: db, log: repoLog}
}

func (r *accountRepo) Create(ctx context.Context, tx *gorm.DB, accounts []*types.Account) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(accounts) == 0 {
		return []*types.Account{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Account
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *accountRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Account
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *accountRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Account{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *accountRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	// Accounts carry gorm.DeletedAt, so this is a soft delete.
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Account{}).Error
}

package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

// VideoFilter predicates are combined with logical AND. Zero values mean
// "no constraint".
type VideoFilter struct {
	AccountID uuid.UUID
	Status    string
}

type VideoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, videos []*types.Video) ([]*types.Video, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Video, error)
	List(ctx context.Context, tx *gorm.DB, filter VideoFilter) ([]*types.Video, error)
	ListPostedBefore(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, cutoff time.Time) ([]*types.Video, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	IDsByAccount(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) ([]uuid.UUID, error)
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	repoLog := baseLog.With("repo", "VideoRepo")
	return &videoRepo{db: db, log: repoLog}
}

func (r *videoRepo) Create(ctx context.Context, tx *gorm.DB, videos []*types.Video) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(videos) == 0 {
		return []*types.Video{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Video
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *videoRepo) List(ctx context.Context, tx *gorm.DB, filter VideoFilter) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Model(&types.Video{})
	if filter.AccountID != uuid.Nil {
		q = q.Where("account_id = ?", filter.AccountID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var results []*types.Video
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *videoRepo) ListPostedBefore(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, cutoff time.Time) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Video
	if err := transaction.WithContext(ctx).
		Where("account_id = ? AND status = ? AND posted_at IS NOT NULL AND posted_at <= ?",
			accountID, types.VideoStatusPosted, cutoff).
		Order("posted_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *videoRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Video{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *videoRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Video{}).Error
}

func (r *videoRepo) IDsByAccount(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Video{}).
		Where("account_id = ?", accountID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

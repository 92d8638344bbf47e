package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

// VideoMetricRepo is append-only: snapshots are created and read, never
// updated. Deletion exists only for the video-delete cascade.
type VideoMetricRepo interface {
	Create(ctx context.Context, tx *gorm.DB, metrics []*types.VideoMetric) ([]*types.VideoMetric, error)
	ListByVideo(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) ([]*types.VideoMetric, error)
	ListByVideoIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) ([]*types.VideoMetric, error)
	LatestByVideo(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) (*types.VideoMetric, error)
	DeleteByVideoIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) error
}

type videoMetricRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoMetricRepo(db *gorm.DB, baseLog *logger.Logger) VideoMetricRepo {
	repoLog := baseLog.With("repo", "VideoMetricRepo")
	return &videoMetricRepo{db: db, log: repoLog}
}

func (r *videoMetricRepo) Create(ctx context.Context, tx *gorm.DB, metrics []*types.VideoMetric) ([]*types.VideoMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(metrics) == 0 {
		return []*types.VideoMetric{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *videoMetricRepo) ListByVideo(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) ([]*types.VideoMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.VideoMetric
	if err := transaction.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("recorded_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *videoMetricRepo) ListByVideoIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) ([]*types.VideoMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.VideoMetric
	if len(videoIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("video_id IN ?", videoIDs).
		Order("recorded_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *videoMetricRepo) LatestByVideo(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) (*types.VideoMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.VideoMetric
	if err := transaction.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("recorded_at DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *videoMetricRepo) DeleteByVideoIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(videoIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("video_id IN ?", videoIDs).
		Delete(&types.VideoMetric{}).Error
}

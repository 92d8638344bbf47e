package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type VideoNoteRepo interface {
	GetByVideoID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) (*types.VideoNote, error)
	GetByVideoIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) ([]*types.VideoNote, error)
	Upsert(ctx context.Context, tx *gorm.DB, note *types.VideoNote) (*types.VideoNote, error)
	DeleteByVideoIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) error
}

type videoNoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoNoteRepo(db *gorm.DB, baseLog *logger.Logger) VideoNoteRepo {
	repoLog := baseLog.With("repo", "VideoNoteRepo")
	return &videoNoteRepo{db: db, log: repoLog}
}

func (r *videoNoteRepo) GetByVideoID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) (*types.VideoNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.VideoNote
	if err := transaction.WithContext(ctx).
		Where("video_id = ?", videoID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *videoNoteRepo) GetByVideoIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) ([]*types.VideoNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.VideoNote
	if len(videoIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("video_id IN ?", videoIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert keys on the unique video_id index: one note per video.
func (r *videoNoteRepo) Upsert(ctx context.Context, tx *gorm.DB, note *types.VideoNote) (*types.VideoNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"what_worked", "what_failed", "what_to_try", "updated_at",
			}),
		}).
		Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (r *videoNoteRepo) DeleteByVideoIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(videoIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("video_id IN ?", videoIDs).
		Delete(&types.VideoNote{}).Error
}

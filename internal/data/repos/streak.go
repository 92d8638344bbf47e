package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type StreakRepo interface {
	Create(ctx context.Context, tx *gorm.DB, streak *types.Streak) (*types.Streak, error)
	GetByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) (*types.Streak, error)
	// UpdateIfUnchanged writes the streak only when the stored
	// last_activity_at still matches prev. Returns the number of rows
	// written; zero means another writer got there first.
	UpdateIfUnchanged(ctx context.Context, tx *gorm.DB, streak *types.Streak, prev *time.Time) (int64, error)
	DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error
}

type streakRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStreakRepo(db *gorm.DB, baseLog *logger.Logger) StreakRepo {
	repoLog := baseLog.With("repo", "StreakRepo")
	return &streakRepo{db: db, log: repoLog}
}

func (r *streakRepo) Create(ctx context.Context, tx *gorm.DB, streak *types.Streak) (*types.Streak, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(streak).Error; err != nil {
		return nil, err
	}
	return streak, nil
}

func (r *streakRepo) GetByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) (*types.Streak, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Streak
	if err := transaction.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *streakRepo) UpdateIfUnchanged(ctx context.Context, tx *gorm.DB, streak *types.Streak, prev *time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Model(&types.Streak{}).
		Where("id = ?", streak.ID)
	if prev == nil {
		q = q.Where("last_activity_at IS NULL")
	} else {
		q = q.Where("last_activity_at = ?", *prev)
	}

	res := q.Updates(map[string]interface{}{
		"current":          streak.Current,
		"longest":          streak.Longest,
		"last_activity_at": streak.LastActivityAt,
		"xp":               streak.XP,
	})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *streakRepo) DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&types.Streak{}).Error
}

package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type UserSettingsRepo interface {
	Get(ctx context.Context, tx *gorm.DB) (*types.UserSettings, error)
	Save(ctx context.Context, tx *gorm.DB, settings *types.UserSettings) (*types.UserSettings, error)
}

type userSettingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSettingsRepo(db *gorm.DB, baseLog *logger.Logger) UserSettingsRepo {
	repoLog := baseLog.With("repo", "UserSettingsRepo")
	return &userSettingsRepo{db: db, log: repoLog}
}

func (r *userSettingsRepo) Get(ctx context.Context, tx *gorm.DB) (*types.UserSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UserSettings
	if err := transaction.WithContext(ctx).
		Where("id = ?", types.UserSettingsID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userSettingsRepo) Save(ctx context.Context, tx *gorm.DB, settings *types.UserSettings) (*types.UserSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	settings.ID = types.UserSettingsID
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"models", "updated_at"}),
		}).
		Create(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

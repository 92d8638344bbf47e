package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// Accounts + gamification
		&types.Account{},
		&types.Streak{},

		// Content planning
		&types.Video{},
		&types.VideoNote{},
		&types.Idea{},
		&types.IdeaFolder{},
		&types.Task{},

		// Metric snapshot series
		&types.VideoMetric{},
		&types.AccountMetric{},

		// Reports + assistant transcripts
		&types.TrendReport{},
		&types.Conversation{},
		&types.Message{},

		// Process-global settings
		&types.UserSettings{},
	)
}

// EnsureIndexes creates the secondary indexes the list/filter paths depend
// on beyond what the model tags declare. Statements are portable across
// sqlite and postgres.
func EnsureIndexes(db *gorm.DB) error {
	// The generation pipeline queries pending metrics_update tasks per
	// account on every run.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_task_account_type_status
		ON task (account_id, type, status);
	`).Error; err != nil {
		return fmt.Errorf("create idx_task_account_type_status: %w", err)
	}

	// Staleness scan: posted videos per account ordered by posted date.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_video_account_status_posted
		ON video (account_id, status, posted_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_video_account_status_posted: %w", err)
	}

	// Latest-snapshot lookups walk the series newest-first.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_video_metric_video_recorded
		ON video_metric (video_id, recorded_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_video_metric_video_recorded: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_account_metric_account_platform_recorded
		ON account_metric (account_id, platform, recorded_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_account_metric_account_platform_recorded: %w", err)
	}

	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureIndexes(s.db); err != nil {
		s.log.Error("Index migration failed", "error", err)
		return err
	}
	return nil
}

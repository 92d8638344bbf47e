package app

import (
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/platform/fieldcrypt"
	"github.com/reelkit/reelkit-backend/internal/services"
)

type Services struct {
	Account      services.AccountService
	Video        services.VideoService
	VideoNote    services.VideoNoteService
	Metrics      services.MetricsService
	Idea         services.IdeaService
	IdeaFolder   services.IdeaFolderService
	Task         services.TaskService
	TaskGen      services.TaskGenService
	Streak       services.StreakService
	Export       services.ExportService
	TrendReport  services.TrendReportService
	Conversation services.ConversationService
	Settings     services.SettingsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	var cipher *fieldcrypt.Cipher
	if cfg.EncryptionKey != "" {
		var err error
		cipher, err = fieldcrypt.New(cfg.EncryptionKey)
		if err != nil {
			return Services{}, err
		}
		log.Info("Field encryption enabled")
	}

	return Services{
		Account: services.NewAccountService(
			db, log,
			r.Account, r.Streak, r.AccountMetric,
			r.Video, r.VideoMetric, r.VideoNote,
			r.Idea, r.IdeaFolder, r.Task,
			r.TrendReport, r.Conversation, r.Message,
		),
		Video:        services.NewVideoService(db, log, r.Video, r.VideoMetric, r.VideoNote, r.Task),
		VideoNote:    services.NewVideoNoteService(db, log, r.VideoNote, r.Video),
		Metrics:      services.NewMetricsService(db, log, r.AccountMetric, r.VideoMetric, r.Video),
		Idea:         services.NewIdeaService(db, log, r.Idea),
		IdeaFolder:   services.NewIdeaFolderService(db, log, r.IdeaFolder, r.Idea),
		Task:         services.NewTaskService(db, log, r.Task),
		TaskGen:      services.NewTaskGenService(db, log, r.Video, r.VideoMetric, r.Task),
		Streak:       services.NewStreakService(db, log, r.Streak),
		Export:       services.NewExportService(db, log, r.Account, r.Video, r.VideoMetric, r.VideoNote, r.Idea, r.Streak),
		TrendReport:  services.NewTrendReportService(db, log, r.TrendReport),
		Conversation: services.NewConversationService(db, log, r.Conversation, r.Message, cipher),
		Settings:     services.NewSettingsService(db, log, r.UserSettings),
	}, nil
}

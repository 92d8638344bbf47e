package app

import (
	httpH "github.com/reelkit/reelkit-backend/internal/http/handlers"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
)

type Handlers struct {
	Account      *httpH.AccountHandler
	Video        *httpH.VideoHandler
	Metrics      *httpH.MetricsHandler
	Idea         *httpH.IdeaHandler
	Task         *httpH.TaskHandler
	Streak       *httpH.StreakHandler
	Export       *httpH.ExportHandler
	TrendReport  *httpH.TrendReportHandler
	Conversation *httpH.ConversationHandler
	Settings     *httpH.SettingsHandler

	Health *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Account:      httpH.NewAccountHandler(log, s.Account),
		Video:        httpH.NewVideoHandler(log, s.Video, s.VideoNote),
		Metrics:      httpH.NewMetricsHandler(log, s.Metrics),
		Idea:         httpH.NewIdeaHandler(log, s.Idea, s.IdeaFolder),
		Task:         httpH.NewTaskHandler(log, s.Task, s.TaskGen),
		Streak:       httpH.NewStreakHandler(log, s.Streak),
		Export:       httpH.NewExportHandler(log, s.Export),
		TrendReport:  httpH.NewTrendReportHandler(log, s.TrendReport),
		Conversation: httpH.NewConversationHandler(log, s.Conversation),
		Settings:     httpH.NewSettingsHandler(log, s.Settings),

		Health: httpH.NewHealthHandler(),
	}
}

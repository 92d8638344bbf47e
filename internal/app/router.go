package app

import (
	"github.com/gin-gonic/gin"

	reelhttp "github.com/reelkit/reelkit-backend/internal/http"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers) *gin.Engine {
	return reelhttp.NewRouter(reelhttp.RouterConfig{
		Log: log,

		AccountHandler:      handlers.Account,
		VideoHandler:        handlers.Video,
		MetricsHandler:      handlers.Metrics,
		IdeaHandler:         handlers.Idea,
		TaskHandler:         handlers.Task,
		StreakHandler:       handlers.Streak,
		ExportHandler:       handlers.Export,
		TrendReportHandler:  handlers.TrendReport,
		ConversationHandler: handlers.Conversation,
		SettingsHandler:     handlers.Settings,

		HealthHandler: handlers.Health,
	})
}

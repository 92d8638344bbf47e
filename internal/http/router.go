package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/reelkit/reelkit-backend/internal/http/handlers"
	httpMW "github.com/reelkit/reelkit-backend/internal/http/middleware"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AccountHandler      *httpH.AccountHandler
	VideoHandler        *httpH.VideoHandler
	MetricsHandler      *httpH.MetricsHandler
	IdeaHandler         *httpH.IdeaHandler
	TaskHandler         *httpH.TaskHandler
	StreakHandler       *httpH.StreakHandler
	ExportHandler       *httpH.ExportHandler
	TrendReportHandler  *httpH.TrendReportHandler
	ConversationHandler *httpH.ConversationHandler
	SettingsHandler     *httpH.SettingsHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Accounts
		if cfg.AccountHandler != nil {
			api.POST("/accounts", cfg.AccountHandler.Create)
			api.GET("/accounts", cfg.AccountHandler.List)
			api.GET("/accounts/:id", cfg.AccountHandler.Get)
			api.PATCH("/accounts/:id", cfg.AccountHandler.Update)
			api.DELETE("/accounts/:id", cfg.AccountHandler.Delete)
			api.DELETE("/accounts/:id/purge", cfg.AccountHandler.Purge)
		}

		// Account metrics and analytics
		if cfg.MetricsHandler != nil {
			api.POST("/accounts/:id/metrics", cfg.MetricsHandler.RecordAccountMetric)
			api.GET("/accounts/:id/metrics", cfg.MetricsHandler.ListAccountMetrics)
			api.GET("/accounts/:id/metrics/growth", cfg.MetricsHandler.FollowerGrowth)
			api.GET("/accounts/:id/metrics/video-totals", cfg.MetricsHandler.AccountVideoTotals)
			api.POST("/videos/:id/metrics", cfg.MetricsHandler.RecordVideoMetric)
			api.GET("/videos/:id/metrics", cfg.MetricsHandler.ListVideoMetrics)
		}

		// Videos and retrospective notes
		if cfg.VideoHandler != nil {
			api.POST("/videos", cfg.VideoHandler.Create)
			api.GET("/videos", cfg.VideoHandler.List)
			api.GET("/videos/:id", cfg.VideoHandler.Get)
			api.PATCH("/videos/:id", cfg.VideoHandler.Update)
			api.DELETE("/videos/:id", cfg.VideoHandler.Delete)
			api.GET("/videos/:id/note", cfg.VideoHandler.GetNote)
			api.PUT("/videos/:id/note", cfg.VideoHandler.UpsertNote)
		}

		// Ideas and folders
		if cfg.IdeaHandler != nil {
			api.POST("/ideas", cfg.IdeaHandler.Create)
			api.GET("/ideas", cfg.IdeaHandler.List)
			api.GET("/ideas/:id", cfg.IdeaHandler.Get)
			api.PATCH("/ideas/:id", cfg.IdeaHandler.Update)
			api.DELETE("/ideas/:id", cfg.IdeaHandler.Delete)
			api.POST("/idea-folders", cfg.IdeaHandler.CreateFolder)
			api.GET("/idea-folders", cfg.IdeaHandler.ListFolders)
			api.PATCH("/idea-folders/:id", cfg.IdeaHandler.RenameFolder)
			api.DELETE("/idea-folders/:id", cfg.IdeaHandler.DeleteFolder)
		}

		// Tasks
		if cfg.TaskHandler != nil {
			api.POST("/tasks", cfg.TaskHandler.Create)
			api.GET("/tasks", cfg.TaskHandler.List)
			api.GET("/tasks/:id", cfg.TaskHandler.Get)
			api.PATCH("/tasks/:id", cfg.TaskHandler.Update)
			api.POST("/tasks/:id/complete", cfg.TaskHandler.Complete)
			api.POST("/tasks/:id/snooze", cfg.TaskHandler.Snooze)
			api.DELETE("/tasks/:id", cfg.TaskHandler.Delete)
			api.POST("/accounts/:id/tasks/generate", cfg.TaskHandler.GenerateMetricsUpdateTasks)
		}

		// Streak and XP
		if cfg.StreakHandler != nil {
			api.GET("/accounts/:id/streak", cfg.StreakHandler.Get)
			api.POST("/accounts/:id/checkin", cfg.StreakHandler.RecordActivity)
		}

		// Export
		if cfg.ExportHandler != nil {
			api.GET("/accounts/:id/export", cfg.ExportHandler.Export)
		}

		// Trend reports
		if cfg.TrendReportHandler != nil {
			api.POST("/trend-reports", cfg.TrendReportHandler.Create)
			api.GET("/trend-reports", cfg.TrendReportHandler.List)
			api.GET("/trend-reports/:id", cfg.TrendReportHandler.Get)
			api.DELETE("/trend-reports/:id", cfg.TrendReportHandler.Delete)
		}

		// Conversations
		if cfg.ConversationHandler != nil {
			api.POST("/conversations", cfg.ConversationHandler.Create)
			api.GET("/conversations", cfg.ConversationHandler.List)
			api.GET("/conversations/:id", cfg.ConversationHandler.Get)
			api.POST("/conversations/:id/messages", cfg.ConversationHandler.AppendMessage)
			api.DELETE("/conversations/:id", cfg.ConversationHandler.Delete)
		}

		// Settings
		if cfg.SettingsHandler != nil {
			api.GET("/settings", cfg.SettingsHandler.Get)
			api.PUT("/settings", cfg.SettingsHandler.Update)
			api.POST("/settings/reset", cfg.SettingsHandler.Reset)
		}
	}

	return r
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelkit/reelkit-backend/internal/http/response"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/services"
)

type MetricsHandler struct {
	log            *logger.Logger
	metricsService services.MetricsService
}

func NewMetricsHandler(log *logger.Logger, metricsService services.MetricsService) *MetricsHandler {
	return &MetricsHandler{
		log:            log.With("handler", "MetricsHandler"),
		metricsService: metricsService,
	}
}

func (h *MetricsHandler) RecordAccountMetric(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input services.RecordAccountMetricInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	metric, err := h.metricsService.RecordAccountMetric(c.Request.Context(), accountID, input)
	if err != nil {
		h.log.Error("RecordAccountMetric failed", "error", err, "account_id", accountID)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"metric": metric})
}

func (h *MetricsHandler) ListAccountMetrics(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}
	metrics, err := h.metricsService.AccountMetrics(c.Request.Context(), accountID, c.Query("platform"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"metrics": metrics})
}

func (h *MetricsHandler) FollowerGrowth(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}
	growth, err := h.metricsService.FollowerGrowth(c.Request.Context(), accountID, c.Query("platform"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"follower_growth": growth})
}

func (h *MetricsHandler) AccountVideoTotals(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}
	totals, err := h.metricsService.AccountVideoTotals(c.Request.Context(), accountID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"totals": totals})
}

func (h *MetricsHandler) RecordVideoMetric(c *gin.Context) {
	videoID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input services.RecordVideoMetricInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	metric, err := h.metricsService.RecordVideoMetric(c.Request.Context(), videoID, input)
	if err != nil {
		h.log.Error("RecordVideoMetric failed", "error", err, "video_id", videoID)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"metric": metric})
}

func (h *MetricsHandler) ListVideoMetrics(c *gin.Context) {
	videoID, ok := pathID(c, "id")
	if !ok {
		return
	}
	metrics, err := h.metricsService.VideoMetrics(c.Request.Context(), videoID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"metrics": metrics})
}

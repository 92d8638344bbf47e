package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelkit/reelkit-backend/internal/http/response"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/services"
)

type TrendReportHandler struct {
	log           *logger.Logger
	reportService services.TrendReportService
}

func NewTrendReportHandler(log *logger.Logger, reportService services.TrendReportService) *TrendReportHandler {
	return &TrendReportHandler{
		log:           log.With("handler", "TrendReportHandler"),
		reportService: reportService,
	}
}

func (h *TrendReportHandler) Create(c *gin.Context) {
	var body struct {
		AccountID string          `json:"account_id"`
		Provider  string          `json:"provider"`
		Content   json.RawMessage `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	accountID, err := parseUUID(body.AccountID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	report, err := h.reportService.Create(c.Request.Context(), accountID, body.Provider, body.Content)
	if err != nil {
		h.log.Error("Create failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"report": report})
}

func (h *TrendReportHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	report, err := h.reportService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"report": report})
}

func (h *TrendReportHandler) List(c *gin.Context) {
	accountID, ok := queryID(c, "account_id")
	if !ok {
		return
	}
	if accountID == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument",
			errMissingAccountID)
		return
	}
	reports, err := h.reportService.ListByAccount(c.Request.Context(), *accountID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reports": reports})
}

func (h *TrendReportHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.reportService.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("Delete failed", "error", err, "report_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

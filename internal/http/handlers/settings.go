package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelkit/reelkit-backend/internal/http/response"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/services"
)

type SettingsHandler struct {
	log             *logger.Logger
	settingsService services.SettingsService
}

func NewSettingsHandler(log *logger.Logger, settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		log:             log.With("handler", "SettingsHandler"),
		settingsService: settingsService,
	}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	models, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.log.Error("Get failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"models": models})
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var body struct {
		Category string `json:"category"`
		Model    string `json:"model"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	models, err := h.settingsService.Update(c.Request.Context(), body.Category, body.Model)
	if err != nil {
		h.log.Error("Update failed", "error", err, "category", body.Category)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"models": models})
}

func (h *SettingsHandler) Reset(c *gin.Context) {
	models, err := h.settingsService.Reset(c.Request.Context())
	if err != nil {
		h.log.Error("Reset failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"models": models})
}

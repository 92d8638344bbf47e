package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelkit/reelkit-backend/internal/http/response"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/services"
)

type StreakHandler struct {
	log           *logger.Logger
	streakService services.StreakService
}

func NewStreakHandler(log *logger.Logger, streakService services.StreakService) *StreakHandler {
	return &StreakHandler{
		log:           log.With("handler", "StreakHandler"),
		streakService: streakService,
	}
}

func (h *StreakHandler) Get(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}
	streak, err := h.streakService.Get(c.Request.Context(), accountID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"streak": streak})
}

// RecordActivity accepts an optional action in the body; an empty body is a
// plain daily check-in.
func (h *StreakHandler) RecordActivity(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Action string `json:"action"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}
	if body.Action == "" {
		body.Action = services.ActionCheckin
	}

	result, err := h.streakService.RecordActivity(c.Request.Context(), accountID, body.Action)
	if err != nil {
		h.log.Error("RecordActivity failed", "error", err, "account_id", accountID)
		response.RespondServiceError(c, err)
		return
	}

	payload := gin.H{
		"streak":     result.Streak,
		"xp_gained":  result.XPGained,
		"is_new_day": result.IsNewDay,
	}
	if m := services.MilestoneFor(result.Streak.Current); m != nil && result.IsNewDay {
		payload["milestone"] = m
	}
	response.RespondOK(c, payload)
}

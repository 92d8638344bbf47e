package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelkit/reelkit-backend/internal/http/response"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/services"
)

type ConversationHandler struct {
	log         *logger.Logger
	convService services.ConversationService
}

func NewConversationHandler(log *logger.Logger, convService services.ConversationService) *ConversationHandler {
	return &ConversationHandler{
		log:         log.With("handler", "ConversationHandler"),
		convService: convService,
	}
}

func (h *ConversationHandler) Create(c *gin.Context) {
	var body struct {
		AccountID string `json:"account_id"`
		Title     string `json:"title"`
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
	conversation, err := h.convService.Create(c.Request.Context(), accountID, body.Title)
	if err != nil {
		h.log.Error("Create failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"conversation": conversation})
}

func (h *ConversationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	conversation, err := h.convService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"conversation": conversation})
}

func (h *ConversationHandler) List(c *gin.Context) {
	accountID, ok := queryID(c, "account_id")
	if !ok {
		return
	}
	if accountID == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument",
			errMissingAccountID)
		return
	}
	conversations, err := h.convService.ListByAccount(c.Request.Context(), *accountID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"conversations": conversations})
}

func (h *ConversationHandler) AppendMessage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	message, err := h.convService.AppendMessage(c.Request.Context(), id, body.Role, body.Content)
	if err != nil {
		h.log.Error("AppendMessage failed", "error", err, "conversation_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": message})
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.convService.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("Delete failed", "error", err, "conversation_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelkit/reelkit-backend/internal/http/response"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/services"
)

type AccountHandler struct {
	log            *logger.Logger
	accountService services.AccountService
}

func NewAccountHandler(log *logger.Logger, accountService services.AccountService) *AccountHandler {
	return &AccountHandler{
		log:            log.With("handler", "AccountHandler"),
		accountService: accountService,
	}
}

func (h *AccountHandler) Create(c *gin.Context) {
	var input services.CreateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	account, err := h.accountService.Create(c.Request.Context(), input)
	if err != nil {
		h.log.Error("Create failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"account": account})
}

func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	account, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"account": account})
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"accounts": accounts})
}

func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch services.UpdateAccountInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	account, err := h.accountService.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.log.Error("Update failed", "error", err, "account_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"account": account})
}

func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.accountService.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("Delete failed", "error", err, "account_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// Purge hard-deletes the account and every owned record. Irreversible.
func (h *AccountHandler) Purge(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.accountService.Purge(c.Request.Context(), id); err != nil {
		h.log.Error("Purge failed", "error", err, "account_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"purged": true})
}

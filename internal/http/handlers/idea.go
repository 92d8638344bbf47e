package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/http/response"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/services"
)

type IdeaHandler struct {
	log           *logger.Logger
	ideaService   services.IdeaService
	folderService services.IdeaFolderService
}

func NewIdeaHandler(log *logger.Logger, ideaService services.IdeaService, folderService services.IdeaFolderService) *IdeaHandler {
	return &IdeaHandler{
		log:           log.With("handler", "IdeaHandler"),
		ideaService:   ideaService,
		folderService: folderService,
	}
}

func (h *IdeaHandler) Create(c *gin.Context) {
	var input services.CreateIdeaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	idea, err := h.ideaService.Create(c.Request.Context(), input)
	if err != nil {
		h.log.Error("Create failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"idea": idea})
}

func (h *IdeaHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	idea, err := h.ideaService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"idea": idea})
}

func (h *IdeaHandler) List(c *gin.Context) {
	accountID, ok := queryID(c, "account_id")
	if !ok {
		return
	}
	folderID, ok := queryID(c, "folder_id")
	if !ok {
		return
	}
	filter := repos.IdeaFilter{Status: c.Query("status"), FolderID: folderID}
	if accountID != nil {
		filter.AccountID = *accountID
	}
	ideas, err := h.ideaService.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("List failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ideas": ideas})
}

func (h *IdeaHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch services.UpdateIdeaInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	idea, err := h.ideaService.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.log.Error("Update failed", "error", err, "idea_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"idea": idea})
}

func (h *IdeaHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.ideaService.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("Delete failed", "error", err, "idea_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

func (h *IdeaHandler) CreateFolder(c *gin.Context) {
	var body struct {
		AccountID string `json:"account_id"`
		Name      string `json:"name"`
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
	folder, err := h.folderService.Create(c.Request.Context(), accountID, body.Name)
	if err != nil {
		h.log.Error("CreateFolder failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"folder": folder})
}

func (h *IdeaHandler) ListFolders(c *gin.Context) {
	accountID, ok := queryID(c, "account_id")
	if !ok {
		return
	}
	if accountID == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument",
			errMissingAccountID)
		return
	}
	folders, err := h.folderService.ListByAccount(c.Request.Context(), *accountID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"folders": folders})
}

func (h *IdeaHandler) RenameFolder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	folder, err := h.folderService.Rename(c.Request.Context(), id, body.Name)
	if err != nil {
		h.log.Error("RenameFolder failed", "error", err, "folder_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"folder": folder})
}

func (h *IdeaHandler) DeleteFolder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.folderService.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("DeleteFolder failed", "error", err, "folder_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

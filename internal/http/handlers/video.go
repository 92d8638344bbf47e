package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/http/response"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/services"
)

type VideoHandler struct {
	log          *logger.Logger
	videoService services.VideoService
	noteService  services.VideoNoteService
}

func NewVideoHandler(log *logger.Logger, videoService services.VideoService, noteService services.VideoNoteService) *VideoHandler {
	return &VideoHandler{
		log:          log.With("handler", "VideoHandler"),
		videoService: videoService,
		noteService:  noteService,
	}
}

func (h *VideoHandler) Create(c *gin.Context) {
	var input services.CreateVideoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	video, err := h.videoService.Create(c.Request.Context(), input)
	if err != nil {
		h.log.Error("Create failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"video": video})
}

func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	video, err := h.videoService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"video": video})
}

func (h *VideoHandler) List(c *gin.Context) {
	accountID, ok := queryID(c, "account_id")
	if !ok {
		return
	}
	filter := repos.VideoFilter{Status: c.Query("status")}
	if accountID != nil {
		filter.AccountID = *accountID
	}
	videos, err := h.videoService.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("List failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"videos": videos})
}

func (h *VideoHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch services.UpdateVideoInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	video, err := h.videoService.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.log.Error("Update failed", "error", err, "video_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"video": video})
}

func (h *VideoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.videoService.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("Delete failed", "error", err, "video_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

func (h *VideoHandler) GetNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	note, err := h.noteService.GetByVideo(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"note": note})
}

func (h *VideoHandler) UpsertNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input services.UpsertVideoNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	note, err := h.noteService.Upsert(c.Request.Context(), id, input)
	if err != nil {
		h.log.Error("UpsertNote failed", "error", err, "video_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"note": note})
}

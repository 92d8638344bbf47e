package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/http/response"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/services"
)

type TaskHandler struct {
	log            *logger.Logger
	taskService    services.TaskService
	taskGenService services.TaskGenService
}

func NewTaskHandler(log *logger.Logger, taskService services.TaskService, taskGenService services.TaskGenService) *TaskHandler {
	return &TaskHandler{
		log:            log.With("handler", "TaskHandler"),
		taskService:    taskService,
		taskGenService: taskGenService,
	}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var input services.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	task, err := h.taskService.Create(c.Request.Context(), input)
	if err != nil {
		h.log.Error("Create failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"task": task})
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.taskService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"task": task})
}

func (h *TaskHandler) List(c *gin.Context) {
	accountID, ok := queryID(c, "account_id")
	if !ok {
		return
	}
	videoID, ok := queryID(c, "video_id")
	if !ok {
		return
	}
	filter := repos.TaskFilter{
		Type:    c.Query("type"),
		Status:  c.Query("status"),
		VideoID: videoID,
	}
	if accountID != nil {
		filter.AccountID = *accountID
	}
	tasks, err := h.taskService.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("List failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tasks": tasks})
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch services.UpdateTaskInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	task, err := h.taskService.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.log.Error("Update failed", "error", err, "task_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"task": task})
}

func (h *TaskHandler) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.taskService.Complete(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Complete failed", "error", err, "task_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"task": task})
}

func (h *TaskHandler) Snooze(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Until time.Time `json:"until"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	task, err := h.taskService.Snooze(c.Request.Context(), id, body.Until)
	if err != nil {
		h.log.Error("Snooze failed", "error", err, "task_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"task": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("Delete failed", "error", err, "task_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// GenerateMetricsUpdateTasks scans posted videos with stale metrics and
// queues reminder tasks. Safe to call repeatedly.
func (h *TaskHandler) GenerateMetricsUpdateTasks(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}
	created, err := h.taskGenService.GenerateMetricsUpdateTasks(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("GenerateMetricsUpdateTasks failed", "error", err, "account_id", accountID)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"created": created})
}

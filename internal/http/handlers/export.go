package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/reelkit/reelkit-backend/internal/http/response"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/services"
)

type ExportHandler struct {
	log           *logger.Logger
	exportService services.ExportService
}

func NewExportHandler(log *logger.Logger, exportService services.ExportService) *ExportHandler {
	return &ExportHandler{
		log:           log.With("handler", "ExportHandler"),
		exportService: exportService,
	}
}

// Export returns the downloadable account document. Scope is narrowed with
// ?include=videos,ideas,streak; omitted means everything.
func (h *ExportHandler) Export(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	scope := services.FullExport()
	if include, present := c.GetQueryArray("include"); present && len(include) > 0 {
		scope = services.ExportScope{}
		for _, section := range include {
			switch section {
			case "videos":
				scope.Videos = true
			case "ideas":
				scope.Ideas = true
			case "streak":
				scope.Streak = true
			}
		}
	}

	doc, err := h.exportService.ExportAccount(c.Request.Context(), accountID, scope)
	if err != nil {
		h.log.Error("Export failed", "error", err, "account_id", accountID)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, doc)
}

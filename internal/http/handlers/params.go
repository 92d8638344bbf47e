package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reelkit/reelkit-backend/internal/http/response"
)

var errMissingAccountID = errors.New("account_id is required")

func parseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed uuid %q", raw)
	}
	return id, nil
}

// pathID parses the named uuid path parameter, writing a 400 on failure.
// Callers must return when ok is false.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument",
			fmt.Errorf("invalid %s parameter", name))
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional uuid query parameter. Absent returns (nil, true).
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument",
			fmt.Errorf("invalid %s parameter", name))
		return nil, false
	}
	return &id, true
}

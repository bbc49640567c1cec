package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/claudeloba/talk-over-api/internal/models"
	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

// ForceStatus overrides a project's stage without running the pipeline.
// Intended for recovery tooling and tests, not normal operation.
func (h *PipelineHandler) ForceStatus(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req models.ForceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if _, ok := pipeline.ParseStage(req.Status); !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid status", Message: "unknown status " + req.Status})
		return
	}

	project, err := h.machine.ForceStatus(c.Request.Context(), id, req.Status, req.ErrorMessage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewProjectResponse(project))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/claudeloba/talk-over-api/internal/models"
)

// AssembleProject renders the final video from an explicit, ordered media
// selection. The project must be parked in video_assembly.
func (h *PipelineHandler) AssembleProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req models.AssembleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	mediaIDs := make([]uuid.UUID, len(req.MediaIDs))
	for i, raw := range req.MediaIDs {
		mediaID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid media id", Message: raw})
			return
		}
		mediaIDs[i] = mediaID
	}

	project, err := h.machine.Assemble(c.Request.Context(), id, mediaIDs, req.TransitionStyle, req.BackgroundMusic)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AssembleResponse{
		ProjectID: project.ID.String(),
		Status:    project.Status,
		VideoURL:  project.VideoURL.String,
	})
}

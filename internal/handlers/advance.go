package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/claudeloba/talk-over-api/internal/models"
	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

// PipelineHandler exposes the stage machine over HTTP.
type PipelineHandler struct {
	machine *pipeline.Machine
	log     zerolog.Logger
}

func NewPipelineHandler(machine *pipeline.Machine, log zerolog.Logger) *PipelineHandler {
	return &PipelineHandler{
		machine: machine,
		log:     log,
	}
}

// AdvanceProject runs the project's next pipeline stage and returns the
// updated project. Terminal projects and projects waiting on a media
// selection come back unchanged.
func (h *PipelineHandler) AdvanceProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.machine.Advance(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewProjectResponse(project))
}

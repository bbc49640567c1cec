package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/claudeloba/talk-over-api/internal/models"
)

// ProjectStore is the persistence surface the project handlers need.
type ProjectStore interface {
	CreateProject(ctx context.Context, topic, durationPreference, voicePreference, visualStyle string) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type ProjectsHandler struct {
	store ProjectStore
	log   zerolog.Logger
}

func NewProjectsHandler(store ProjectStore, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		store: store,
		log:   log,
	}
}

var validDurations = map[string]bool{
	models.DurationShort:  true,
	models.DurationMedium: true,
	models.DurationLong:   true,
}

var validStyles = map[string]bool{
	models.StyleImages: true,
	models.StyleVideos: true,
	models.StyleMixed:  true,
}

// CreateProject registers a new project in the pending stage. The
// pipeline does not start until the first advance call.
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if req.DurationPreference != "" && !validDurations[req.DurationPreference] {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid duration preference", Message: "must be short, medium or long"})
		return
	}

	if req.VisualStyle == "" {
		req.VisualStyle = models.StyleMixed
	}
	if !validStyles[req.VisualStyle] {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid visual style", Message: "must be images, videos or mixed"})
		return
	}

	project, err := h.store.CreateProject(c.Request.Context(), req.Topic, req.DurationPreference, req.VoicePreference, req.VisualStyle)
	if err != nil {
		respondError(c, err)
		return
	}

	h.log.Info().
		Str("project_id", project.ID.String()).
		Str("topic", project.Topic).
		Msg("project created")

	c.JSON(http.StatusCreated, models.NewProjectResponse(project))
}

// ListProjects returns all projects, newest first.
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	projects, err := h.store.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]models.ProjectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = models.ProjectSummary{
			ID:        p.ID.String(),
			Topic:     p.Topic,
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: summaries})
}

// GetProject returns full project state including script, keywords and
// artifact URLs.
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.store.GetProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewProjectResponse(project))
}

// DeleteProject removes a project and, via the FK cascade, its media
// candidates.
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteProject(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.log.Info().Str("project_id", id.String()).Msg("project deleted")

	c.Status(http.StatusNoContent)
}

// parseProjectID reads the project_id path parameter, writing a 400
// response itself when the value is not a UUID.
func parseProjectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return uuid.Nil, false
	}
	return id, true
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/claudeloba/talk-over-api/internal/models"
)

// MediaStore is the persistence surface the media listing needs.
type MediaStore interface {
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListMediaItems(ctx context.Context, projectID uuid.UUID) ([]models.MediaItem, error)
}

type MediaHandler struct {
	store MediaStore
}

func NewMediaHandler(store MediaStore) *MediaHandler {
	return &MediaHandler{
		store: store,
	}
}

// ListMedia returns the project's media candidates with their suitability
// scores and selection flags.
func (h *MediaHandler) ListMedia(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	// Confirm the project exists so an unknown id is a 404, not an empty
	// list.
	if _, err := h.store.GetProject(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	items, err := h.store.ListMediaItems(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	media := make([]models.MediaItemResponse, len(items))
	for i := range items {
		media[i] = models.NewMediaItemResponse(&items[i])
	}

	c.JSON(http.StatusOK, models.MediaListResponse{Media: media})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/claudeloba/talk-over-api/internal/models"
	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

// respondError maps pipeline error kinds to HTTP status codes. Malformed
// requests are the caller's fault (400/409), upstream trouble is a bad
// gateway, and anything unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	var unknown *pipeline.UnknownCandidateError

	switch {
	case errors.Is(err, pipeline.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found", Message: err.Error()})
	case errors.As(err, &unknown):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown media items", Message: err.Error()})
	case errors.Is(err, pipeline.ErrEmptySelection),
		errors.Is(err, pipeline.ErrInsufficientMedia),
		errors.Is(err, pipeline.ErrInvalidTopic),
		errors.Is(err, pipeline.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
	case errors.Is(err, pipeline.ErrInvalidStage):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "invalid stage", Message: err.Error()})
	case errors.Is(err, pipeline.ErrUpstreamUnavailable),
		errors.Is(err, pipeline.ErrUpstreamRejected),
		errors.Is(err, pipeline.ErrRenderingFailed):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "upstream failure", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error", Message: err.Error()})
	}
}

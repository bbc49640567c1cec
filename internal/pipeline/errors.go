package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Error kinds surfaced by the pipeline and its external clients. Stage
// handlers wrap these with context; callers match with errors.Is.
var (
	ErrInvalidTopic        = errors.New("invalid topic")
	ErrEmptyInput          = errors.New("empty input")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamRejected    = errors.New("upstream rejected request")
	ErrInsufficientMedia   = errors.New("insufficient media")
	ErrRenderingFailed     = errors.New("rendering failed")
	ErrEmptySelection      = errors.New("empty selection")
	ErrNotFound            = errors.New("not found")
	ErrInvalidStage        = errors.New("invalid stage for operation")
)

// UnknownCandidateError reports every selected media id that does not
// exist or does not belong to the project.
type UnknownCandidateError struct {
	IDs []uuid.UUID
}

func (e *UnknownCandidateError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("media items not found or don't belong to project: %s", strings.Join(ids, ", "))
}

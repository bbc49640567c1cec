package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/claudeloba/talk-over-api/internal/models"
)

// Script is the output of the script-writing capability.
type Script struct {
	Content string
	// Search keywords extracted from the topic, in priority order.
	Keywords []string
	// Estimated narration length in seconds.
	EstimatedDuration int
}

// FoundMedia is a raw candidate descriptor returned by a search provider,
// before it is attached to a project and keyword.
type FoundMedia struct {
	Kind         string
	Source       string
	SourceID     string
	URL          string
	ThumbnailURL string
}

// RenderRequest carries everything the rendering service needs. Media is
// in timeline order.
type RenderRequest struct {
	AudioURL        string
	Media           []models.MediaItem
	TransitionStyle string
	BackgroundMusic bool
}

// ScriptWriter turns a topic into a narration script with keywords.
// Fails with ErrInvalidTopic or ErrUpstreamUnavailable.
type ScriptWriter interface {
	WriteScript(ctx context.Context, topic, durationPreference string) (*Script, error)
}

// Narrator synthesizes speech for a script and returns a reference to the
// stored audio. Fails with ErrEmptyInput, ErrUpstreamRejected or
// ErrUpstreamUnavailable.
type Narrator interface {
	Narrate(ctx context.Context, scriptText, voiceID string) (string, error)
}

// MediaSearcher finds candidate media for a keyword. It returns an empty
// slice for no matches; errors are reserved for transport/provider
// failures, which the aggregator degrades rather than propagates.
type MediaSearcher interface {
	Search(ctx context.Context, keyword, kind string) ([]FoundMedia, error)
}

// Renderer assembles the final video. Fails with ErrInsufficientMedia or
// ErrRenderingFailed.
type Renderer interface {
	Render(ctx context.Context, req RenderRequest) (string, error)
}

// Store is the persistence surface the pipeline drives. Every mutation
// that accompanies a stage transition updates status, the stage's fields
// and updated_at in a single statement.
type Store interface {
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	SetProjectStatus(ctx context.Context, id uuid.UUID, status string) error
	SetProjectScript(ctx context.Context, id uuid.UUID, status, script string, keywords []string) error
	SetProjectAudio(ctx context.Context, id uuid.UUID, status, audioURL string) error
	SetProjectVideo(ctx context.Context, id uuid.UUID, status, videoURL string) error
	SetProjectFailed(ctx context.Context, id uuid.UUID, message string) error
	ForceProjectStatus(ctx context.Context, id uuid.UUID, status, message string) (*models.Project, error)

	CreateMediaItems(ctx context.Context, items []models.MediaItem) error
	ListMediaItems(ctx context.Context, projectID uuid.UUID) ([]models.MediaItem, error)
	GetMediaItems(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]models.MediaItem, error)
	SetMediaSuitability(ctx context.Context, id uuid.UUID, score int, reason string) error
	MarkMediaSelected(ctx context.Context, ids []uuid.UUID) error
}

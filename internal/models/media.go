package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Media kinds.
const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaGIF   = "gif"
)

// Media sources.
const (
	SourcePexels = "pexels"
	SourceGiphy  = "giphy"
)

type MediaItem struct {
	ID                uuid.UUID
	ProjectID         uuid.UUID
	Type              string
	Source            string
	SourceID          string
	URL               string
	ThumbnailURL      sql.NullString
	Keyword           string
	SuitabilityScore  sql.NullInt64
	SuitabilityReason sql.NullString
	IsSelected        bool
	CreatedAt         time.Time
}

// Scored reports whether the suitability evaluation has run for this item.
// Score and reason are written together, so checking the score is enough.
func (m *MediaItem) Scored() bool {
	return m.SuitabilityScore.Valid
}

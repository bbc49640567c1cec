package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Project stage values, in pipeline order. The pipeline package owns the
// ordering and transition rules; these are just the persisted names.
const (
	StagePending          = "pending"
	StageScriptGeneration = "script_generation"
	StageTTSGeneration    = "tts_generation"
	StageMediaSourcing    = "media_sourcing"
	StageMediaEvaluation  = "media_evaluation"
	StageVideoAssembly    = "video_assembly"
	StageCompleted        = "completed"
	StageFailed           = "failed"
)

// Duration preference values. Unset means unspecified.
const (
	DurationShort  = "short"
	DurationMedium = "medium"
	DurationLong   = "long"
)

// Visual style values.
const (
	StyleImages = "images"
	StyleVideos = "videos"
	StyleMixed  = "mixed"
)

type Project struct {
	ID                 uuid.UUID
	Topic              string
	Status             string
	DurationPreference sql.NullString
	VoicePreference    sql.NullString
	VisualStyle        string
	ScriptContent      sql.NullString
	Keywords           json.RawMessage
	AudioURL           sql.NullString
	VideoURL           sql.NullString
	ErrorMessage       sql.NullString
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// KeywordList decodes the stored keyword array. A project that has not
// completed script generation has no keywords and returns nil.
func (p *Project) KeywordList() []string {
	if len(p.Keywords) == 0 {
		return nil
	}
	var keywords []string
	if err := json.Unmarshal(p.Keywords, &keywords); err != nil {
		return nil
	}
	return keywords
}

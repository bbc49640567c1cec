package models

import "time"

type ProjectResponse struct {
	ID                 string    `json:"project_id"`
	Topic              string    `json:"topic"`
	Status             string    `json:"status"`
	DurationPreference string    `json:"duration_preference,omitempty"`
	VoicePreference    string    `json:"voice_preference,omitempty"`
	VisualStyle        string    `json:"visual_style"`
	ScriptContent      string    `json:"script_content,omitempty"`
	Keywords           []string  `json:"keywords,omitempty"`
	AudioURL           string    `json:"audio_url,omitempty"`
	VideoURL           string    `json:"video_url,omitempty"`
	ErrorMessage       string    `json:"error_message,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ProjectListResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

type ProjectSummary struct {
	ID        string    `json:"project_id"`
	Topic     string    `json:"topic"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MediaListResponse struct {
	Media []MediaItemResponse `json:"media"`
}

type MediaItemResponse struct {
	ID                string    `json:"media_id"`
	ProjectID         string    `json:"project_id"`
	Type              string    `json:"type"`
	Source            string    `json:"source"`
	SourceID          string    `json:"source_id"`
	URL               string    `json:"url"`
	ThumbnailURL      string    `json:"thumbnail_url,omitempty"`
	Keyword           string    `json:"keyword"`
	SuitabilityScore  *int      `json:"suitability_score,omitempty"`
	SuitabilityReason string    `json:"suitability_reason,omitempty"`
	IsSelected        bool      `json:"is_selected"`
	CreatedAt         time.Time `json:"created_at"`
}

type AssembleResponse struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
	VideoURL  string `json:"video_url,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// NewProjectResponse flattens the nullable DB columns for the API.
func NewProjectResponse(p *Project) ProjectResponse {
	return ProjectResponse{
		ID:                 p.ID.String(),
		Topic:              p.Topic,
		Status:             p.Status,
		DurationPreference: p.DurationPreference.String,
		VoicePreference:    p.VoicePreference.String,
		VisualStyle:        p.VisualStyle,
		ScriptContent:      p.ScriptContent.String,
		Keywords:           p.KeywordList(),
		AudioURL:           p.AudioURL.String,
		VideoURL:           p.VideoURL.String,
		ErrorMessage:       p.ErrorMessage.String,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// NewMediaItemResponse flattens a media row for the API.
func NewMediaItemResponse(m *MediaItem) MediaItemResponse {
	resp := MediaItemResponse{
		ID:                m.ID.String(),
		ProjectID:         m.ProjectID.String(),
		Type:              m.Type,
		Source:            m.Source,
		SourceID:          m.SourceID,
		URL:               m.URL,
		ThumbnailURL:      m.ThumbnailURL.String,
		Keyword:           m.Keyword,
		SuitabilityReason: m.SuitabilityReason.String,
		IsSelected:        m.IsSelected,
		CreatedAt:         m.CreatedAt,
	}
	if m.SuitabilityScore.Valid {
		score := int(m.SuitabilityScore.Int64)
		resp.SuitabilityScore = &score
	}
	return resp
}

package models

type CreateProjectRequest struct {
	Topic string `json:"topic" binding:"required"`
	// short (~30s), medium (~60s) or long (~120s). Empty means unspecified.
	DurationPreference string `json:"duration_preference,omitempty"`
	// Narration voice id, passed through to the TTS provider.
	VoicePreference string `json:"voice_preference,omitempty"`
	// images, videos or mixed. Defaults to mixed.
	VisualStyle string `json:"visual_style,omitempty"`
}

type AssembleRequest struct {
	// Ordered media item ids; the order is the timeline order for rendering.
	MediaIDs        []string `json:"media_ids" binding:"required"`
	TransitionStyle string   `json:"transition_style,omitempty"`
	BackgroundMusic bool     `json:"background_music"`
}

type ForceStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

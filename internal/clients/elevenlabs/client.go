// Package elevenlabs implements the narration capability against the
// ElevenLabs text-to-speech API. Synthesized audio is written to artifact
// storage and referenced by URL; the raw bytes never touch the database.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

// Uploader stores an artifact and returns a fetchable URL for it.
type Uploader interface {
	Upload(ctx context.Context, objectName string, data []byte) (string, error)
}

type Client struct {
	baseURL        string
	apiKey         string
	defaultVoiceID string
	httpClient     *http.Client
	uploader       Uploader
}

func NewClient(baseURL, apiKey, defaultVoiceID string, uploader Uploader) *Client {
	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		apiKey:         apiKey,
		defaultVoiceID: defaultVoiceID,
		uploader:       uploader,
		httpClient:     &http.Client{},
	}
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// Narrate synthesizes speech for the script and returns a URL to the
// stored mp3. A blank script is rejected before any upstream call.
func (c *Client) Narrate(ctx context.Context, scriptText, voiceID string) (string, error) {
	if strings.TrimSpace(scriptText) == "" {
		return "", fmt.Errorf("%w: script content is required", pipeline.ErrEmptyInput)
	}

	if voiceID == "" {
		voiceID = c.defaultVoiceID
	}

	payload := synthesizeRequest{
		Text:    strings.TrimSpace(scriptText),
		ModelID: "eleven_monolingual_v1",
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
			Style:           0.0,
			UseSpeakerBoost: true,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/text-to-speech/" + voiceID
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", pipeline.ErrUpstreamUnavailable, ctx.Err())
		}
		return "", fmt.Errorf("%w: %v", pipeline.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", fmt.Errorf("%w: status %d, body: %s", pipeline.ErrUpstreamRejected, resp.StatusCode, string(body))
		}
		return "", fmt.Errorf("%w: status %d, body: %s", pipeline.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read audio: %v", pipeline.ErrUpstreamUnavailable, err)
	}

	objectName := fmt.Sprintf("audio/tts_%d.mp3", time.Now().UnixMilli())
	audioURL, err := c.uploader.Upload(ctx, objectName, audio)
	if err != nil {
		return "", fmt.Errorf("failed to store narration audio: %w", err)
	}

	return audioURL, nil
}

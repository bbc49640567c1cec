// Package renderkit is the client for the external video rendering
// service that stitches selected media over a narration track.
package renderkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

type clipPayload struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type renderPayload struct {
	AudioURL        string        `json:"audio_url"`
	TransitionStyle string        `json:"transition_style"`
	BackgroundMusic bool          `json:"background_music"`
	Clips           []clipPayload `json:"clips"`
}

type renderResult struct {
	VideoURL string `json:"video_url"`
	Error    string `json:"error,omitempty"`
}

// Render submits the assembly job and blocks until the service returns
// the finished video URL. The caller bounds the wait via ctx.
func (c *Client) Render(ctx context.Context, req pipeline.RenderRequest) (string, error) {
	if len(req.Media) == 0 {
		return "", fmt.Errorf("%w: no clips to render", pipeline.ErrInsufficientMedia)
	}

	payload := renderPayload{
		AudioURL:        req.AudioURL,
		TransitionStyle: req.TransitionStyle,
		BackgroundMusic: req.BackgroundMusic,
		Clips:           make([]clipPayload, 0, len(req.Media)),
	}
	for _, item := range req.Media {
		payload.Clips = append(payload.Clips, clipPayload{Type: item.Type, URL: item.URL})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal render request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/render", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", pipeline.ErrUpstreamUnavailable, err)
		}
		return "", fmt.Errorf("%w: %v", pipeline.ErrRenderingFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", pipeline.ErrRenderingFailed, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var result renderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: failed to decode render response: %v", pipeline.ErrRenderingFailed, err)
	}
	if result.VideoURL == "" {
		if result.Error != "" {
			return "", fmt.Errorf("%w: %s", pipeline.ErrRenderingFailed, result.Error)
		}
		return "", fmt.Errorf("%w: empty video url in response", pipeline.ErrRenderingFailed)
	}
	return result.VideoURL, nil
}

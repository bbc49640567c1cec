// Package pexels implements media search for stock images and video
// clips against the Pexels API.
package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/claudeloba/talk-over-api/internal/models"
	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

// requestsPerSecond throttles outbound search calls so the sourcing
// fan-out cannot burn through the provider quota.
const requestsPerSecond = 2

type Client struct {
	baseURL    string
	apiKey     string
	perPage    int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a Pexels search client. baseURL is the API root
// (https://api.pexels.com); photo and video endpoints hang off it.
func NewClient(baseURL, apiKey string, perPage int) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		perPage:    perPage,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

type photoResponse struct {
	Photos []struct {
		ID  int64 `json:"id"`
		Src struct {
			Large  string `json:"large"`
			Medium string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

type videoResponse struct {
	Videos []struct {
		ID         int64  `json:"id"`
		Image      string `json:"image"`
		VideoFiles []struct {
			Link string `json:"link"`
		} `json:"video_files"`
	} `json:"videos"`
}

func (c *Client) Search(ctx context.Context, keyword, kind string) ([]pipeline.FoundMedia, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrUpstreamUnavailable, err)
	}

	var endpoint string
	switch kind {
	case models.MediaImage:
		endpoint = c.baseURL + "/v1/search"
	case models.MediaVideo:
		endpoint = c.baseURL + "/videos/search"
	default:
		return nil, fmt.Errorf("pexels does not serve media kind %q", kind)
	}

	query := url.Values{}
	query.Set("query", keyword)
	query.Set("per_page", strconv.Itoa(c.perPage))
	query.Set("page", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, fmt.Errorf("%w: status %d", pipeline.ErrUpstreamRejected, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d", pipeline.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if kind == models.MediaImage {
		return decodePhotos(resp)
	}
	return decodeVideos(resp)
}

func decodePhotos(resp *http.Response) ([]pipeline.FoundMedia, error) {
	var result photoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode photo response: %v", pipeline.ErrUpstreamUnavailable, err)
	}

	found := make([]pipeline.FoundMedia, 0, len(result.Photos))
	for _, photo := range result.Photos {
		found = append(found, pipeline.FoundMedia{
			Kind:         models.MediaImage,
			Source:       models.SourcePexels,
			SourceID:     strconv.FormatInt(photo.ID, 10),
			URL:          photo.Src.Large,
			ThumbnailURL: photo.Src.Medium,
		})
	}
	return found, nil
}

func decodeVideos(resp *http.Response) ([]pipeline.FoundMedia, error) {
	var result videoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode video response: %v", pipeline.ErrUpstreamUnavailable, err)
	}

	found := make([]pipeline.FoundMedia, 0, len(result.Videos))
	for _, video := range result.Videos {
		if len(video.VideoFiles) == 0 {
			continue
		}
		found = append(found, pipeline.FoundMedia{
			Kind:         models.MediaVideo,
			Source:       models.SourcePexels,
			SourceID:     strconv.FormatInt(video.ID, 10),
			URL:          video.VideoFiles[0].Link,
			ThumbnailURL: video.Image,
		})
	}
	return found, nil
}

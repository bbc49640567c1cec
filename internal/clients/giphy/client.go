// Package giphy implements media search for animated GIFs against the
// Giphy API.
package giphy

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

const requestsPerSecond = 2

// rating filters results to content safe for general audiences.
const rating = "g"

type Client struct {
	baseURL    string
	apiKey     string
	limit      int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a Giphy search client. baseURL is the API root
// (https://api.giphy.com).
func NewClient(baseURL, apiKey string, limit int) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		limit:      limit,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

type searchResponse struct {
	Data []struct {
		ID     string `json:"id"`
		Images struct {
			Original struct {
				URL string `json:"url"`
			} `json:"original"`
			Downsized struct {
				URL string `json:"url"`
			} `json:"downsized"`
		} `json:"images"`
	} `json:"data"`
}

func (c *Client) Search(ctx context.Context, keyword, kind string) ([]pipeline.FoundMedia, error) {
	if kind != models.MediaGIF {
		return nil, fmt.Errorf("giphy does not serve media kind %q", kind)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrUpstreamUnavailable, err)
	}

	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("q", keyword)
	query.Set("limit", strconv.Itoa(c.limit))
	query.Set("rating", rating)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/gifs/search?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

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

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode search response: %v", pipeline.ErrUpstreamUnavailable, err)
	}

	found := make([]pipeline.FoundMedia, 0, len(result.Data))
	for _, gif := range result.Data {
		if gif.Images.Original.URL == "" {
			continue
		}
		thumbnail := gif.Images.Downsized.URL
		if thumbnail == "" {
			thumbnail = gif.Images.Original.URL
		}
		found = append(found, pipeline.FoundMedia{
			Kind:         models.MediaGIF,
			Source:       models.SourceGiphy,
			SourceID:     gif.ID,
			URL:          gif.Images.Original.URL,
			ThumbnailURL: thumbnail,
		})
	}
	return found, nil
}

package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/claudeloba/talk-over-api/internal/models"
)

// Aggregator fans search calls out across providers and merges the
// results into a deduplicated candidate set. A failing or slow provider
// call contributes zero candidates; it never fails the sourcing stage.
type Aggregator struct {
	// One searcher per media kind. Pexels owns image and video, Giphy
	// owns gif; the mapping is fixed at construction.
	searchers map[string]MediaSearcher
	timeout   time.Duration
	log       zerolog.Logger
}

func NewAggregator(pexels, giphy MediaSearcher, timeout time.Duration, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		searchers: map[string]MediaSearcher{
			models.MediaImage: pexels,
			models.MediaVideo: pexels,
			models.MediaGIF:   giphy,
		},
		timeout: timeout,
		log:     log,
	}
}

// kindsForStyle maps a visual style preference to the media kinds to
// search for. Mixed sources stills plus short animated loops; full video
// clips are only pulled for the videos style.
func kindsForStyle(style string) []string {
	switch style {
	case models.StyleImages:
		return []string{models.MediaImage}
	case models.StyleVideos:
		return []string{models.MediaVideo}
	default:
		return []string{models.MediaImage, models.MediaGIF}
	}
}

// Source issues one search per (keyword, kind) pair concurrently, waits
// for all of them, and returns unscored media rows for the project,
// deduplicated on (source, source id). A provider id already seen is
// dropped regardless of which keyword surfaced it.
func (a *Aggregator) Source(ctx context.Context, projectID uuid.UUID, keywords []string, style string) []models.MediaItem {
	kinds := kindsForStyle(style)

	type searchResult struct {
		keyword string
		found   []FoundMedia
	}

	var wg sync.WaitGroup
	results := make(chan searchResult, len(keywords)*len(kinds))

	for _, keyword := range keywords {
		for _, kind := range kinds {
			searcher, ok := a.searchers[kind]
			if !ok {
				continue
			}

			wg.Add(1)
			go func(keyword, kind string, searcher MediaSearcher) {
				defer wg.Done()

				callCtx, cancel := context.WithTimeout(ctx, a.timeout)
				defer cancel()

				found, err := searcher.Search(callCtx, keyword, kind)
				if err != nil {
					a.log.Warn().Err(err).
						Str("keyword", keyword).
						Str("kind", kind).
						Msg("media search degraded to empty result")
					return
				}
				results <- searchResult{keyword: keyword, found: found}
			}(keyword, kind, searcher)
		}
	}

	wg.Wait()
	close(results)

	type dedupeKey struct {
		source   string
		sourceID string
	}

	seen := make(map[dedupeKey]bool)
	var items []models.MediaItem
	for res := range results {
		for _, f := range res.found {
			key := dedupeKey{source: f.Source, sourceID: f.SourceID}
			if seen[key] {
				continue
			}
			seen[key] = true

			item := models.MediaItem{
				ID:        uuid.New(),
				ProjectID: projectID,
				Type:      f.Kind,
				Source:    f.Source,
				SourceID:  f.SourceID,
				URL:       f.URL,
				Keyword:   res.keyword,
			}
			if f.ThumbnailURL != "" {
				item.ThumbnailURL.String = f.ThumbnailURL
				item.ThumbnailURL.Valid = true
			}
			items = append(items, item)
		}
	}

	return items
}

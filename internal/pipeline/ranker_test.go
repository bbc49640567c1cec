package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/claudeloba/talk-over-api/internal/models"
	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

func TestScoreKeywordInScript(t *testing.T) {
	item := &models.MediaItem{Type: models.MediaImage, Source: models.SourceGiphy}

	score, reason := pipeline.Score(item, "Volcanoes shape the landscape over millennia.", "volcanoes")
	assert.Equal(t, 70, score)
	assert.Equal(t, "Good match: keyword 'volcanoes' found in script content", reason)
}

func TestScoreKeywordMissing(t *testing.T) {
	item := &models.MediaItem{Type: models.MediaImage, Source: models.SourceGiphy}

	score, reason := pipeline.Score(item, "A script about something else entirely.", "volcanoes")
	assert.Equal(t, 40, score)
	assert.Equal(t, "Partial match: keyword 'volcanoes' not directly mentioned in script", reason)
}

func TestScoreKeywordMatchIsCaseInsensitive(t *testing.T) {
	item := &models.MediaItem{Type: models.MediaImage, Source: models.SourceGiphy}

	score, _ := pipeline.Score(item, "VOLCANOES are found worldwide.", "Volcanoes")
	assert.Equal(t, 70, score)
}

func TestScoreTypeAndSourceBonuses(t *testing.T) {
	script := "volcanoes everywhere"

	video := &models.MediaItem{Type: models.MediaVideo, Source: models.SourcePexels}
	score, reason := pipeline.Score(video, script, "volcanoes")
	assert.Equal(t, 90, score)
	assert.Contains(t, reason, "Video content provides dynamic visual appeal")
	assert.Contains(t, reason, "High-quality source")

	gif := &models.MediaItem{Type: models.MediaGIF, Source: models.SourceGiphy}
	score, reason = pipeline.Score(gif, script, "volcanoes")
	assert.Equal(t, 80, score)
	assert.Contains(t, reason, "Animated content adds engagement")
	assert.NotContains(t, reason, "High-quality source")

	image := &models.MediaItem{Type: models.MediaImage, Source: models.SourcePexels}
	score, _ = pipeline.Score(image, script, "volcanoes")
	assert.Equal(t, 75, score)
}

func TestScoreIsDeterministic(t *testing.T) {
	item := &models.MediaItem{Type: models.MediaVideo, Source: models.SourcePexels}

	first, firstReason := pipeline.Score(item, "a lesson on volcanoes", "volcanoes")
	for i := 0; i < 10; i++ {
		score, reason := pipeline.Score(item, "a lesson on volcanoes", "volcanoes")
		assert.Equal(t, first, score)
		assert.Equal(t, firstReason, reason)
	}
}

func TestScoreStaysInBounds(t *testing.T) {
	// Current weights cannot leave [0,100], but the clamp is part of the
	// contract.
	combos := []struct {
		kind   string
		source string
	}{
		{models.MediaImage, models.SourceGiphy},
		{models.MediaImage, models.SourcePexels},
		{models.MediaVideo, models.SourcePexels},
		{models.MediaGIF, models.SourceGiphy},
	}
	for _, combo := range combos {
		item := &models.MediaItem{Type: combo.kind, Source: combo.source}
		for _, script := range []string{"", "volcanoes"} {
			score, _ := pipeline.Score(item, script, "volcanoes")
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

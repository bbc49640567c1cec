package pipeline

import (
	"fmt"
	"strings"

	"github.com/claudeloba/talk-over-api/internal/models"
)

// Suitability scoring weights. The heuristic is deliberately simple and
// deterministic so evaluation is safe to re-run; a vision-model evaluator
// can replace Score without changing the contract.
const (
	scoreBase        = 50
	scoreKeywordHit  = 20
	scoreKeywordMiss = -10
	scoreVideoBonus  = 15
	scoreGIFBonus    = 10
	scorePexelsBonus = 5
	scoreFloor       = 0
	scoreCeil        = 100
)

// Score rates how well a candidate fits the script and the keyword it was
// sourced for, returning a score in [0,100] and a human-readable reason.
func Score(item *models.MediaItem, scriptContent, keyword string) (int, string) {
	score := scoreBase
	var reason string

	if strings.Contains(strings.ToLower(scriptContent), strings.ToLower(keyword)) {
		score += scoreKeywordHit
		reason = fmt.Sprintf("Good match: keyword '%s' found in script content", keyword)
	} else {
		score += scoreKeywordMiss
		reason = fmt.Sprintf("Partial match: keyword '%s' not directly mentioned in script", keyword)
	}

	switch item.Type {
	case models.MediaVideo:
		score += scoreVideoBonus
		reason += ". Video content provides dynamic visual appeal"
	case models.MediaGIF:
		score += scoreGIFBonus
		reason += ". Animated content adds engagement"
	}

	if item.Source == models.SourcePexels {
		score += scorePexelsBonus
		reason += ". High-quality source"
	}

	if score < scoreFloor {
		score = scoreFloor
	}
	if score > scoreCeil {
		score = scoreCeil
	}

	return score, reason
}

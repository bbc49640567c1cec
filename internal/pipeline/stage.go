package pipeline

import (
	"github.com/claudeloba/talk-over-api/internal/models"
)

// Stage is a project's position in the pipeline. The zero value is not a
// valid stage; stages are constructed from the constants below or parsed
// from a persisted status string.
type Stage string

const (
	StagePending          Stage = models.StagePending
	StageScriptGeneration Stage = models.StageScriptGeneration
	StageTTSGeneration    Stage = models.StageTTSGeneration
	StageMediaSourcing    Stage = models.StageMediaSourcing
	StageMediaEvaluation  Stage = models.StageMediaEvaluation
	StageVideoAssembly    Stage = models.StageVideoAssembly
	StageCompleted        Stage = models.StageCompleted
	StageFailed           Stage = models.StageFailed
)

// stageOrder is the total order of forward progress. failed sits outside
// the order and is reachable from every non-terminal stage.
var stageOrder = []Stage{
	StagePending,
	StageScriptGeneration,
	StageTTSGeneration,
	StageMediaSourcing,
	StageMediaEvaluation,
	StageVideoAssembly,
	StageCompleted,
}

var stageIndex = func() map[Stage]int {
	m := make(map[Stage]int, len(stageOrder))
	for i, s := range stageOrder {
		m[s] = i
	}
	return m
}()

// transitions is the explicit table of allowed moves. Anything not listed
// here is rejected by CanTransition; the administrative override is the
// only path around it.
var transitions = map[Stage][]Stage{
	StagePending:          {StageScriptGeneration, StageFailed},
	StageScriptGeneration: {StageTTSGeneration, StageFailed},
	StageTTSGeneration:    {StageMediaSourcing, StageFailed},
	StageMediaSourcing:    {StageMediaEvaluation, StageFailed},
	StageMediaEvaluation:  {StageVideoAssembly, StageFailed},
	StageVideoAssembly:    {StageCompleted, StageFailed},
	StageCompleted:        {},
	StageFailed:           {},
}

// ParseStage validates a persisted status string.
func ParseStage(s string) (Stage, bool) {
	stage := Stage(s)
	if _, ok := stageIndex[stage]; ok {
		return stage, true
	}
	if stage == StageFailed {
		return stage, true
	}
	return "", false
}

// Terminal reports whether no automatic transition leaves the stage.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// CanTransition reports whether moving from s to next is allowed.
func (s Stage) CanTransition(next Stage) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Before reports whether s precedes other in the forward order. failed
// compares after everything so that monotonicity checks treat it as an
// end state.
func (s Stage) Before(other Stage) bool {
	si, ok := stageIndex[s]
	if !ok {
		return false
	}
	oi, ok := stageIndex[other]
	if !ok {
		return true
	}
	return si < oi
}

func (s Stage) String() string {
	return string(s)
}

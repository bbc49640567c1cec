package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

func TestParseStage(t *testing.T) {
	for _, raw := range []string{
		"pending", "script_generation", "tts_generation", "media_sourcing",
		"media_evaluation", "video_assembly", "completed", "failed",
	} {
		stage, ok := pipeline.ParseStage(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, raw, stage.String())
	}

	_, ok := pipeline.ParseStage("rendering")
	assert.False(t, ok)

	_, ok = pipeline.ParseStage("")
	assert.False(t, ok)
}

func TestStageTerminal(t *testing.T) {
	assert.True(t, pipeline.StageCompleted.Terminal())
	assert.True(t, pipeline.StageFailed.Terminal())
	assert.False(t, pipeline.StagePending.Terminal())
	assert.False(t, pipeline.StageVideoAssembly.Terminal())
}

func TestStageCanTransition(t *testing.T) {
	assert.True(t, pipeline.StagePending.CanTransition(pipeline.StageScriptGeneration))
	assert.True(t, pipeline.StageMediaEvaluation.CanTransition(pipeline.StageVideoAssembly))
	assert.True(t, pipeline.StageVideoAssembly.CanTransition(pipeline.StageCompleted))

	// Every non-terminal stage may fail.
	for _, s := range []pipeline.Stage{
		pipeline.StagePending,
		pipeline.StageScriptGeneration,
		pipeline.StageTTSGeneration,
		pipeline.StageMediaSourcing,
		pipeline.StageMediaEvaluation,
		pipeline.StageVideoAssembly,
	} {
		assert.True(t, s.CanTransition(pipeline.StageFailed), s.String())
	}

	// No skipping, no moving backwards, no leaving terminal stages.
	assert.False(t, pipeline.StagePending.CanTransition(pipeline.StageTTSGeneration))
	assert.False(t, pipeline.StageTTSGeneration.CanTransition(pipeline.StageScriptGeneration))
	assert.False(t, pipeline.StageCompleted.CanTransition(pipeline.StageFailed))
	assert.False(t, pipeline.StageFailed.CanTransition(pipeline.StagePending))
}

func TestStageBefore(t *testing.T) {
	assert.True(t, pipeline.StagePending.Before(pipeline.StageCompleted))
	assert.True(t, pipeline.StageScriptGeneration.Before(pipeline.StageTTSGeneration))
	assert.False(t, pipeline.StageCompleted.Before(pipeline.StagePending))
	assert.False(t, pipeline.StagePending.Before(pipeline.StagePending))

	// failed sits outside the forward order and compares after everything.
	assert.True(t, pipeline.StagePending.Before(pipeline.StageFailed))
	assert.False(t, pipeline.StageFailed.Before(pipeline.StageCompleted))
}

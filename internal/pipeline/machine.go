package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/claudeloba/talk-over-api/internal/models"
)

// Machine drives projects through the pipeline. Each call runs at most
// one stage, re-reading project state from the store first, so a failed
// external call can be retried by simply calling again. Advances for the
// same project are serialized by a per-project mutex; different projects
// run fully in parallel.
type Machine struct {
	store      Store
	scripts    ScriptWriter
	narrator   Narrator
	aggregator *Aggregator
	renderer   Renderer

	callTimeout   time.Duration
	renderTimeout time.Duration
	log           zerolog.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*projectLock
}

func NewMachine(store Store, scripts ScriptWriter, narrator Narrator, aggregator *Aggregator, renderer Renderer, callTimeout, renderTimeout time.Duration, log zerolog.Logger) *Machine {
	return &Machine{
		store:         store,
		scripts:       scripts,
		narrator:      narrator,
		aggregator:    aggregator,
		renderer:      renderer,
		callTimeout:   callTimeout,
		renderTimeout: renderTimeout,
		log:           log,
		locks:         make(map[uuid.UUID]*projectLock),
	}
}

// projectLock serializes stage work for one project. refs counts holders
// and waiters so release can drop the map entry once nobody needs it.
type projectLock struct {
	mu   sync.Mutex
	refs int
}

// acquire blocks until the caller holds the project's lock.
func (m *Machine) acquire(id uuid.UUID) *projectLock {
	m.mu.Lock()
	lock, ok := m.locks[id]
	if !ok {
		lock = &projectLock{}
		m.locks[id] = lock
	}
	lock.refs++
	m.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (m *Machine) release(id uuid.UUID, lock *projectLock) {
	lock.mu.Unlock()

	m.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(m.locks, id)
	}
	m.mu.Unlock()
}

// Advance executes whichever non-terminal stage is next for the project.
// Projects in a terminal stage are returned unchanged, as are projects
// parked in video_assembly waiting for an explicit selection (see
// Assemble). Stage errors are persisted onto the project, which moves to
// failed, and the error is also returned so the caller gets synchronous
// feedback.
func (m *Machine) Advance(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	lock := m.acquire(id)
	defer m.release(id, lock)

	project, err := m.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	stage, ok := ParseStage(project.Status)
	if !ok {
		return nil, fmt.Errorf("project %s has unknown status %q", id, project.Status)
	}

	if stage.Terminal() || stage == StageVideoAssembly {
		return project, nil
	}

	switch stage {
	case StagePending, StageScriptGeneration:
		return m.runScriptGeneration(ctx, project)
	case StageTTSGeneration:
		return m.runTTSGeneration(ctx, project)
	case StageMediaSourcing:
		return m.runMediaSourcing(ctx, project)
	case StageMediaEvaluation:
		return m.runMediaEvaluation(ctx, project)
	default:
		return nil, fmt.Errorf("project %s has unknown status %q", id, project.Status)
	}
}

func (m *Machine) runScriptGeneration(ctx context.Context, project *models.Project) (*models.Project, error) {
	// A pending project enters script_generation before the upstream call
	// so observers see the stage in progress.
	if project.Status == models.StagePending {
		if err := m.store.SetProjectStatus(ctx, project.ID, models.StageScriptGeneration); err != nil {
			return nil, fmt.Errorf("failed to enter script generation: %w", err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	script, err := m.scripts.WriteScript(callCtx, project.Topic, project.DurationPreference.String)
	if err != nil {
		return nil, m.fail(ctx, project.ID, "script generation", mapUpstream(err))
	}

	if err := m.store.SetProjectScript(ctx, project.ID, models.StageTTSGeneration, script.Content, script.Keywords); err != nil {
		return nil, m.fail(ctx, project.ID, "script generation", err)
	}

	m.log.Info().
		Str("project_id", project.ID.String()).
		Int("keywords", len(script.Keywords)).
		Int("estimated_duration_sec", script.EstimatedDuration).
		Msg("script generated")

	return m.store.GetProject(ctx, project.ID)
}

func (m *Machine) runTTSGeneration(ctx context.Context, project *models.Project) (*models.Project, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	audioURL, err := m.narrator.Narrate(callCtx, project.ScriptContent.String, project.VoicePreference.String)
	if err != nil {
		return nil, m.fail(ctx, project.ID, "tts generation", mapUpstream(err))
	}

	if err := m.store.SetProjectAudio(ctx, project.ID, models.StageMediaSourcing, audioURL); err != nil {
		return nil, m.fail(ctx, project.ID, "tts generation", err)
	}

	m.log.Info().Str("project_id", project.ID.String()).Msg("narration audio generated")

	return m.store.GetProject(ctx, project.ID)
}

func (m *Machine) runMediaSourcing(ctx context.Context, project *models.Project) (*models.Project, error) {
	// Per-call timeouts and failure degradation happen inside the
	// aggregator; the stage advances even with zero candidates, since
	// missing media is an acceptable degraded outcome.
	items := m.aggregator.Source(ctx, project.ID, project.KeywordList(), project.VisualStyle)

	if len(items) > 0 {
		if err := m.store.CreateMediaItems(ctx, items); err != nil {
			return nil, m.fail(ctx, project.ID, "media sourcing", err)
		}
	}

	if err := m.store.SetProjectStatus(ctx, project.ID, models.StageMediaEvaluation); err != nil {
		return nil, m.fail(ctx, project.ID, "media sourcing", err)
	}

	m.log.Info().
		Str("project_id", project.ID.String()).
		Int("candidates", len(items)).
		Msg("media candidates sourced")

	return m.store.GetProject(ctx, project.ID)
}

func (m *Machine) runMediaEvaluation(ctx context.Context, project *models.Project) (*models.Project, error) {
	items, err := m.store.ListMediaItems(ctx, project.ID)
	if err != nil {
		return nil, m.fail(ctx, project.ID, "media evaluation", err)
	}

	script := project.ScriptContent.String

	// Candidates have no data dependency on each other; score them
	// concurrently but only advance once every one is persisted.
	var wg sync.WaitGroup
	var scoreMu sync.Mutex
	var scoreErr error
	for i := range items {
		item := items[i]
		if item.Scored() {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			score, reason := Score(&item, script, item.Keyword)
			if err := m.store.SetMediaSuitability(ctx, item.ID, score, reason); err != nil {
				scoreMu.Lock()
				if scoreErr == nil {
					scoreErr = err
				}
				scoreMu.Unlock()
			}
		}()
	}
	wg.Wait()

	if scoreErr != nil {
		return nil, m.fail(ctx, project.ID, "media evaluation", scoreErr)
	}

	if err := m.store.SetProjectStatus(ctx, project.ID, models.StageVideoAssembly); err != nil {
		return nil, m.fail(ctx, project.ID, "media evaluation", err)
	}

	m.log.Info().
		Str("project_id", project.ID.String()).
		Int("candidates", len(items)).
		Msg("media candidates evaluated")

	return m.store.GetProject(ctx, project.ID)
}

// Assemble resolves an explicit media selection and runs the
// video_assembly stage. Selection errors (unknown ids, empty selection,
// wrong stage) are malformed requests: they are returned to the caller
// and leave the project untouched for a corrected retry. A rendering
// failure, by contrast, moves the project to failed; the selection flags
// written before the render call are deliberately kept.
func (m *Machine) Assemble(ctx context.Context, id uuid.UUID, mediaIDs []uuid.UUID, transitionStyle string, backgroundMusic bool) (*models.Project, error) {
	lock := m.acquire(id)
	defer m.release(id, lock)

	project, err := m.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if project.Status != models.StageVideoAssembly {
		return nil, fmt.Errorf("%w: project is %s, expected %s", ErrInvalidStage, project.Status, models.StageVideoAssembly)
	}

	ordered, err := ResolveSelection(ctx, m.store, id, mediaIDs)
	if err != nil {
		return nil, err
	}

	if transitionStyle == "" {
		transitionStyle = "fade"
	}

	renderCtx, cancel := context.WithTimeout(ctx, m.renderTimeout)
	defer cancel()

	videoURL, err := m.renderer.Render(renderCtx, RenderRequest{
		AudioURL:        project.AudioURL.String,
		Media:           ordered,
		TransitionStyle: transitionStyle,
		BackgroundMusic: backgroundMusic,
	})
	if err != nil {
		return nil, m.fail(ctx, project.ID, "video assembly", mapUpstream(err))
	}

	if err := m.store.SetProjectVideo(ctx, project.ID, models.StageCompleted, videoURL); err != nil {
		return nil, m.fail(ctx, project.ID, "video assembly", err)
	}

	m.log.Info().
		Str("project_id", project.ID.String()).
		Int("clips", len(ordered)).
		Msg("video assembled")

	return m.store.GetProject(ctx, project.ID)
}

// ForceStatus is the administrative override: it bypasses the transition
// table entirely. It exists for error injection and recovery tooling, not
// for normal pipeline flow.
func (m *Machine) ForceStatus(ctx context.Context, id uuid.UUID, status, message string) (*models.Project, error) {
	if _, ok := ParseStage(status); !ok {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	lock := m.acquire(id)
	defer m.release(id, lock)

	project, err := m.store.ForceProjectStatus(ctx, id, status, message)
	if err != nil {
		return nil, err
	}

	m.log.Warn().
		Str("project_id", id.String()).
		Str("status", status).
		Msg("project status forced")

	return project, nil
}

// fail records the stage error on the project and moves it to failed.
// The original error is returned so the caller sees it synchronously.
func (m *Machine) fail(ctx context.Context, id uuid.UUID, stage string, cause error) error {
	message := fmt.Sprintf("%s failed: %v", stage, cause)

	if err := m.store.SetProjectFailed(ctx, id, message); err != nil {
		m.log.Error().Err(err).
			Str("project_id", id.String()).
			Msg("failed to persist failure state")
	}

	m.log.Error().Err(cause).
		Str("project_id", id.String()).
		Str("stage", stage).
		Msg("stage failed")

	return fmt.Errorf("%s: %w", stage, cause)
}

// mapUpstream folds call timeouts into the unavailable error kind; the
// orchestrator does not distinguish a hung upstream from a down one.
func mapUpstream(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return err
}

package pipeline_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/claudeloba/talk-over-api/internal/models"
	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

// fakeStore is an in-memory pipeline.Store for machine and selection
// tests.
type fakeStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*models.Project
	media    map[uuid.UUID]*models.MediaItem

	failSuitability bool
	selectedCalls   [][]uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects: make(map[uuid.UUID]*models.Project),
		media:    make(map[uuid.UUID]*models.MediaItem),
	}
}

func (s *fakeStore) addProject(topic, status string) *models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &models.Project{
		ID:          uuid.New(),
		Topic:       topic,
		Status:      status,
		VisualStyle: models.StyleMixed,
	}
	s.projects[p.ID] = p
	return p
}

func (s *fakeStore) addMedia(projectID uuid.UUID, kind, source, keyword string) *models.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &models.MediaItem{
		ID:        uuid.New(),
		ProjectID: projectID,
		Type:      kind,
		Source:    source,
		SourceID:  uuid.NewString(),
		URL:       "https://media.example/" + keyword,
		Keyword:   keyword,
	}
	s.media[m.ID] = m
	return m
}

func (s *fakeStore) GetProject(_ context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, pipeline.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *fakeStore) SetProjectStatus(_ context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return pipeline.ErrNotFound
	}
	p.Status = status
	return nil
}

func (s *fakeStore) SetProjectScript(_ context.Context, id uuid.UUID, status, script string, keywords []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return pipeline.ErrNotFound
	}
	raw, err := json.Marshal(keywords)
	if err != nil {
		return err
	}
	p.Status = status
	p.ScriptContent = sqlString(script)
	p.Keywords = raw
	return nil
}

func (s *fakeStore) SetProjectAudio(_ context.Context, id uuid.UUID, status, audioURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return pipeline.ErrNotFound
	}
	p.Status = status
	p.AudioURL = sqlString(audioURL)
	return nil
}

func (s *fakeStore) SetProjectVideo(_ context.Context, id uuid.UUID, status, videoURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return pipeline.ErrNotFound
	}
	p.Status = status
	p.VideoURL = sqlString(videoURL)
	return nil
}

func (s *fakeStore) SetProjectFailed(_ context.Context, id uuid.UUID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return pipeline.ErrNotFound
	}
	p.Status = models.StageFailed
	p.ErrorMessage = sqlString(message)
	return nil
}

func (s *fakeStore) ForceProjectStatus(_ context.Context, id uuid.UUID, status, message string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, pipeline.ErrNotFound
	}
	p.Status = status
	p.ErrorMessage = sqlString(message)
	copied := *p
	return &copied, nil
}

func (s *fakeStore) CreateMediaItems(_ context.Context, items []models.MediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range items {
		copied := items[i]
		s.media[copied.ID] = &copied
	}
	return nil
}

func (s *fakeStore) ListMediaItems(_ context.Context, projectID uuid.UUID) ([]models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.MediaItem
	for _, m := range s.media {
		if m.ProjectID == projectID {
			items = append(items, *m)
		}
	}
	return items, nil
}

func (s *fakeStore) GetMediaItems(_ context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.MediaItem
	for _, id := range ids {
		m, ok := s.media[id]
		if !ok || m.ProjectID != projectID {
			continue
		}
		items = append(items, *m)
	}
	return items, nil
}

func (s *fakeStore) SetMediaSuitability(_ context.Context, id uuid.UUID, score int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSuitability {
		return fmt.Errorf("suitability write refused")
	}
	m, ok := s.media[id]
	if !ok {
		return pipeline.ErrNotFound
	}
	m.SuitabilityScore.Int64 = int64(score)
	m.SuitabilityScore.Valid = true
	m.SuitabilityReason = sqlString(reason)
	return nil
}

func (s *fakeStore) MarkMediaSelected(_ context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCalls = append(s.selectedCalls, ids)
	for _, id := range ids {
		if m, ok := s.media[id]; ok {
			m.IsSelected = true
		}
	}
	return nil
}

func sqlString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

type fakeScriptWriter struct {
	script *pipeline.Script
	err    error
}

func (f *fakeScriptWriter) WriteScript(context.Context, string, string) (*pipeline.Script, error) {
	return f.script, f.err
}

type fakeNarrator struct {
	url string
	err error
}

func (f *fakeNarrator) Narrate(context.Context, string, string) (string, error) {
	return f.url, f.err
}

// fakeSearcher returns the canned results for a keyword whose Kind
// matches the requested kind, or a blanket error. It records every kind
// it was asked for.
type fakeSearcher struct {
	byKeyword map[string][]pipeline.FoundMedia
	err       error

	mu    sync.Mutex
	kinds []string
}

func (f *fakeSearcher) Search(_ context.Context, keyword, kind string) ([]pipeline.FoundMedia, error) {
	f.mu.Lock()
	f.kinds = append(f.kinds, kind)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	var matched []pipeline.FoundMedia
	for _, m := range f.byKeyword[keyword] {
		if m.Kind == kind {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

func (f *fakeSearcher) seenKinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.kinds...)
}

type fakeRenderer struct {
	url string
	err error

	mu      sync.Mutex
	lastReq pipeline.RenderRequest
}

func (f *fakeRenderer) Render(_ context.Context, req pipeline.RenderRequest) (string, error) {
	f.mu.Lock()
	f.lastReq = req
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

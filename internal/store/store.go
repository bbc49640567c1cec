package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/claudeloba/talk-over-api/internal/models"
	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

const projectColumns = `id, topic, status, duration_preference, voice_preference, visual_style,
		script_content, keywords, audio_url, video_url, error_message, created_at, updated_at`

const mediaColumns = `id, project_id, type, source, source_id, url, thumbnail_url, keyword,
		suitability_score, suitability_reason, is_selected, created_at`

// Client is the Postgres persistence layer. It implements pipeline.Store;
// the handlers also use it directly for the CRUD surface.
type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) CreateProject(ctx context.Context, topic, durationPreference, voicePreference, visualStyle string) (*models.Project, error) {
	var project models.Project
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO video_projects (id, topic, duration_preference, voice_preference, visual_style)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+projectColumns+`
	`, uuid.New(), topic, nullString(durationPreference), nullString(voicePreference), visualStyle).Scan(projectFields(&project)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &project, nil
}

func (c *Client) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := c.db.QueryRowContext(ctx, `
		SELECT `+projectColumns+`
		FROM video_projects
		WHERE id = $1
	`, id).Scan(projectFields(&project)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, pipeline.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM video_projects
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		if err := rows.Scan(projectFields(&project)...); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	// Media rows go with the project via ON DELETE CASCADE.
	res, err := c.db.ExecContext(ctx, `
		DELETE FROM video_projects
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project %s: %w", id, pipeline.ErrNotFound)
	}
	return nil
}

func (c *Client) SetProjectStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE video_projects
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	return err
}

func (c *Client) SetProjectScript(ctx context.Context, id uuid.UUID, status, script string, keywords []string) error {
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		UPDATE video_projects
		SET status = $1, script_content = $2, keywords = $3, updated_at = NOW()
		WHERE id = $4
	`, status, script, keywordsJSON, id)
	return err
}

func (c *Client) SetProjectAudio(ctx context.Context, id uuid.UUID, status, audioURL string) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE video_projects
		SET status = $1, audio_url = $2, updated_at = NOW()
		WHERE id = $3
	`, status, audioURL, id)
	return err
}

func (c *Client) SetProjectVideo(ctx context.Context, id uuid.UUID, status, videoURL string) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE video_projects
		SET status = $1, video_url = $2, updated_at = NOW()
		WHERE id = $3
	`, status, videoURL, id)
	return err
}

func (c *Client) SetProjectFailed(ctx context.Context, id uuid.UUID, message string) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE video_projects
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2
	`, message, id)
	return err
}

func (c *Client) ForceProjectStatus(ctx context.Context, id uuid.UUID, status, message string) (*models.Project, error) {
	var project models.Project
	err := c.db.QueryRowContext(ctx, `
		UPDATE video_projects
		SET status = $1, error_message = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+projectColumns+`
	`, status, nullString(message), id).Scan(projectFields(&project)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, pipeline.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to force project status: %w", err)
	}

	return &project, nil
}

func (c *Client) CreateMediaItems(ctx context.Context, items []models.MediaItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO media_items (id, project_id, type, source, source_id, url, thumbnail_url, keyword)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, item.ID, item.ProjectID, item.Type, item.Source,
			item.SourceID, item.URL, item.ThumbnailURL, item.Keyword); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert media item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit media items: %w", err)
	}
	return nil
}

func (c *Client) ListMediaItems(ctx context.Context, projectID uuid.UUID) ([]models.MediaItem, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT `+mediaColumns+`
		FROM media_items
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media items: %w", err)
	}
	defer rows.Close()

	return scanMediaItems(rows)
}

func (c *Client) GetMediaItems(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]models.MediaItem, error) {
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT `+mediaColumns+`
		FROM media_items
		WHERE project_id = $1 AND id = ANY($2)
	`, projectID, pq.Array(idStrings))
	if err != nil {
		return nil, fmt.Errorf("failed to get media items: %w", err)
	}
	defer rows.Close()

	return scanMediaItems(rows)
}

func (c *Client) SetMediaSuitability(ctx context.Context, id uuid.UUID, score int, reason string) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE media_items
		SET suitability_score = $1, suitability_reason = $2
		WHERE id = $3
	`, score, reason, id)
	return err
}

func (c *Client) MarkMediaSelected(ctx context.Context, ids []uuid.UUID) error {
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	_, err := c.db.ExecContext(ctx, `
		UPDATE media_items
		SET is_selected = TRUE
		WHERE id = ANY($1)
	`, pq.Array(idStrings))
	return err
}

func scanMediaItems(rows *sql.Rows) ([]models.MediaItem, error) {
	var items []models.MediaItem
	for rows.Next() {
		var item models.MediaItem
		err := rows.Scan(
			&item.ID, &item.ProjectID, &item.Type, &item.Source, &item.SourceID,
			&item.URL, &item.ThumbnailURL, &item.Keyword,
			&item.SuitabilityScore, &item.SuitabilityReason, &item.IsSelected, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func projectFields(p *models.Project) []interface{} {
	return []interface{}{
		&p.ID, &p.Topic, &p.Status, &p.DurationPreference, &p.VoicePreference, &p.VisualStyle,
		&p.ScriptContent, &p.Keywords, &p.AudioURL, &p.VideoURL, &p.ErrorMessage,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/claudeloba/talk-over-api/internal/models"
)

// ResolveSelection validates an explicit media selection for a project
// and returns the items in the caller's order, which is the timeline
// order for rendering. Every id must belong to the project; offenders are
// collected into a single UnknownCandidateError. The resolver never picks
// media on its own; score is advisory, selection is always explicit.
//
// On success the items are marked selected in the store. This happens
// before rendering and is not rolled back if rendering later fails, so
// the flags record the last attempted selection.
func ResolveSelection(ctx context.Context, store Store, projectID uuid.UUID, ids []uuid.UUID) ([]models.MediaItem, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}

	owned, err := store.GetMediaItems(ctx, projectID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load media items: %w", err)
	}

	byID := make(map[uuid.UUID]models.MediaItem, len(owned))
	for _, item := range owned {
		byID[item.ID] = item
	}

	var unknown []uuid.UUID
	ordered := make([]models.MediaItem, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		ordered = append(ordered, item)
	}
	if len(unknown) > 0 {
		return nil, &UnknownCandidateError{IDs: unknown}
	}

	if err := store.MarkMediaSelected(ctx, ids); err != nil {
		return nil, fmt.Errorf("failed to mark media selected: %w", err)
	}

	return ordered, nil
}

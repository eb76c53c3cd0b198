package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/calclone-api/internal/models"
)

// EventTypeRepository persists bookable event types.
type EventTypeRepository struct {
	db *sqlx.DB
}

// NewEventTypeRepository builds the repository.
func NewEventTypeRepository(db *sqlx.DB) *EventTypeRepository {
	return &EventTypeRepository{db: db}
}

const eventTypeColumns = `id, title, description, slug, duration_minutes, active, created_at, updated_at`

// List returns all event types, newest first.
func (r *EventTypeRepository) List(ctx context.Context) ([]models.EventType, error) {
	const query = `SELECT ` + eventTypeColumns + ` FROM event_types ORDER BY created_at DESC`
	var items []models.EventType
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	return items, nil
}

// FindByID returns one event type by primary key.
func (r *EventTypeRepository) FindByID(ctx context.Context, id string) (*models.EventType, error) {
	const query = `SELECT ` + eventTypeColumns + ` FROM event_types WHERE id = $1`
	var item models.EventType
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// FindActiveBySlug returns an active event type for the public surface.
func (r *EventTypeRepository) FindActiveBySlug(ctx context.Context, slug string) (*models.EventType, error) {
	const query = `SELECT ` + eventTypeColumns + ` FROM event_types WHERE slug = $1 AND active = TRUE`
	var item models.EventType
	if err := r.db.GetContext(ctx, &item, query, slug); err != nil {
		return nil, err
	}
	return &item, nil
}

// FindBySlug returns an event type regardless of active state.
func (r *EventTypeRepository) FindBySlug(ctx context.Context, slug string) (*models.EventType, error) {
	const query = `SELECT ` + eventTypeColumns + ` FROM event_types WHERE slug = $1`
	var item models.EventType
	if err := r.db.GetContext(ctx, &item, query, slug); err != nil {
		return nil, err
	}
	return &item, nil
}

// ExistsBySlug reports whether another event type already claims the slug.
func (r *EventTypeRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	query := `SELECT 1 FROM event_types WHERE slug = $1 LIMIT 1`
	args := []interface{}{slug}
	if excludeID != "" {
		query = `SELECT 1 FROM event_types WHERE slug = $1 AND id <> $2 LIMIT 1`
		args = append(args, excludeID)
	}
	var one int
	err := r.db.GetContext(ctx, &one, query, args...)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("check slug exists: %w", err)
	}
	return true, nil
}

// Create inserts a new event type, filling in id and timestamps.
func (r *EventTypeRepository) Create(ctx context.Context, item *models.EventType) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	const query = `
INSERT INTO event_types (id, title, description, slug, duration_minutes, active, created_at, updated_at)
VALUES (:id, :title, :description, :slug, :duration_minutes, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create event type: %w", err)
	}
	return nil
}

// Update replaces the mutable columns of an event type.
func (r *EventTypeRepository) Update(ctx context.Context, item *models.EventType) error {
	item.UpdatedAt = time.Now().UTC()

	const query = `
UPDATE event_types
SET title = :title, description = :description, slug = :slug,
    duration_minutes = :duration_minutes, active = :active, updated_at = :updated_at
WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update event type: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return errNoRowsAffected
	}
	return nil
}

// Delete removes the event type; bookings cascade at the database level.
func (r *EventTypeRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM event_types WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete event type: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return errNoRowsAffected
	}
	return nil
}

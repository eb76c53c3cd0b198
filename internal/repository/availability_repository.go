package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/calclone-api/internal/models"
)

// AvailabilityRepository persists the default availability profile and its
// weekly rules.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository builds the repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// GetDefault returns the first availability profile with its rules loaded.
// sql.ErrNoRows is returned when no profile exists yet.
func (r *AvailabilityRepository) GetDefault(ctx context.Context) (*models.Availability, error) {
	const query = `SELECT id, timezone, created_at, updated_at FROM availabilities ORDER BY created_at ASC LIMIT 1`
	var profile models.Availability
	if err := r.db.GetContext(ctx, &profile, query); err != nil {
		return nil, err
	}

	rules, err := r.listRules(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	profile.Rules = rules
	return &profile, nil
}

// Create inserts a new profile with no rules.
func (r *AvailabilityRepository) Create(ctx context.Context, profile *models.Availability) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if profile.Rules == nil {
		profile.Rules = []models.AvailabilityRule{}
	}

	const query = `
INSERT INTO availabilities (id, timezone, created_at, updated_at)
VALUES (:id, :timezone, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("create availability: %w", err)
	}
	return nil
}

// Replace updates the profile timezone and swaps the full rule set in one
// transaction, matching the PUT semantics of the availability endpoint.
func (r *AvailabilityRepository) Replace(ctx context.Context, profile *models.Availability) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace availability: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	profile.UpdatedAt = time.Now().UTC()
	const updateQuery = `UPDATE availabilities SET timezone = :timezone, updated_at = :updated_at WHERE id = :id`
	result, err := tx.NamedExecContext(ctx, updateQuery, profile)
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return errNoRowsAffected
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM availability_rules WHERE availability_id = $1`, profile.ID); err != nil {
		return fmt.Errorf("clear availability rules: %w", err)
	}

	const insertQuery = `
INSERT INTO availability_rules (id, availability_id, weekday, start_time, end_time)
VALUES (:id, :availability_id, :weekday, :start_time, :end_time)`
	for i := range profile.Rules {
		rule := &profile.Rules[i]
		if rule.ID == "" {
			rule.ID = uuid.NewString()
		}
		rule.AvailabilityID = profile.ID
		if _, err := tx.NamedExecContext(ctx, insertQuery, rule); err != nil {
			return fmt.Errorf("insert availability rule: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace availability: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) listRules(ctx context.Context, availabilityID string) ([]models.AvailabilityRule, error) {
	const query = `SELECT id, availability_id, weekday, start_time, end_time
FROM availability_rules WHERE availability_id = $1 ORDER BY weekday ASC, start_time ASC`
	rules := []models.AvailabilityRule{}
	if err := r.db.SelectContext(ctx, &rules, query, availabilityID); err != nil {
		return nil, fmt.Errorf("list availability rules: %w", err)
	}
	return rules, nil
}

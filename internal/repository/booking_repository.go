package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/calclone-api/internal/models"
	apperrors "github.com/noah-isme/calclone-api/pkg/errors"
)

// ConflictCheck inspects the CONFIRMED bookings already holding the day and
// decides whether the new booking may proceed. It runs inside the insert
// transaction, after the event type row has been locked.
type ConflictCheck func(existing []models.Booking) error

// BookingRepository is the booking ledger's persistence layer.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository builds the repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `b.id, b.booking_uid, b.event_type_id, et.slug AS event_type_slug,
b.booker_name, b.booker_email, b.start_at, b.end_at, b.status, b.created_at`

const bookingFrom = ` FROM bookings b JOIN event_types et ON et.id = b.event_type_id`

// List returns bookings relative to now, newest start first.
func (r *BookingRepository) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom
	if filter.Type == "past" {
		query += ` WHERE b.end_at < $1`
	} else {
		query += ` WHERE b.end_at >= $1`
	}
	query += ` ORDER BY b.start_at DESC`

	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, filter.Now); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// FindByID returns one booking by primary key.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	const query = `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.id = $1`
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByUID returns one booking by its public identifier.
func (r *BookingRepository) FindByUID(ctx context.Context, uid string) (*models.Booking, error) {
	const query = `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.booking_uid = $1`
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, uid); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListConfirmedOverlapping returns CONFIRMED bookings of the event type that
// overlap [from, to). Used by the availability resolver.
func (r *BookingRepository) ListConfirmedOverlapping(ctx context.Context, eventTypeID string, from, to time.Time) ([]models.Booking, error) {
	const query = `SELECT ` + bookingColumns + bookingFrom + `
WHERE b.event_type_id = $1 AND b.status = 'CONFIRMED' AND b.start_at < $3 AND b.end_at > $2
ORDER BY b.start_at ASC`
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, eventTypeID, from, to); err != nil {
		return nil, fmt.Errorf("list confirmed bookings: %w", err)
	}
	return bookings, nil
}

// CreateConfirmed atomically re-validates and inserts a CONFIRMED booking.
//
// The event type row is locked with SELECT ... FOR UPDATE so that concurrent
// attempts for the same event type serialize on the row lock: the second
// transaction re-reads the day's bookings only after the first has committed,
// and its check sees the winner. The partial unique index on
// (event_type_id, start_at) WHERE status = 'CONFIRMED' backs this up at the
// schema level; a unique violation maps to the same conflict error.
func (r *BookingRepository) CreateConfirmed(ctx context.Context, booking *models.Booking, windowStart, windowEnd time.Time, check ConflictCheck) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create booking: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var lockedID string
	if err := tx.GetContext(ctx, &lockedID, `SELECT id FROM event_types WHERE id = $1 FOR UPDATE`, booking.EventTypeID); err != nil {
		return fmt.Errorf("lock event type: %w", err)
	}

	const existingQuery = `SELECT ` + bookingColumns + bookingFrom + `
WHERE b.event_type_id = $1 AND b.status = 'CONFIRMED' AND b.start_at < $3 AND b.end_at > $2
ORDER BY b.start_at ASC`
	var existing []models.Booking
	if err := tx.SelectContext(ctx, &existing, existingQuery, booking.EventTypeID, windowStart, windowEnd); err != nil {
		return fmt.Errorf("read existing bookings: %w", err)
	}

	if check != nil {
		if err := check(existing); err != nil {
			return err
		}
	}

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.BookingUID == "" {
		booking.BookingUID = uuid.NewString()
	}
	booking.Status = models.BookingConfirmed
	booking.CreatedAt = time.Now().UTC()

	const insertQuery = `
INSERT INTO bookings (id, booking_uid, event_type_id, booker_name, booker_email, start_at, end_at, status, created_at)
VALUES (:id, :booking_uid, :event_type_id, :booker_name, :booker_email, :start_at, :end_at, :status, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insertQuery, booking); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrSlotTaken
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create booking: %w", err)
	}
	return nil
}

// Cancel flips a CONFIRMED booking to CANCELED. It returns false when the
// booking was not CONFIRMED (already canceled or missing); the status guard
// in the UPDATE keeps the transition atomic.
func (r *BookingRepository) Cancel(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE bookings SET status = 'CANCELED' WHERE id = $1 AND status = 'CONFIRMED'`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("cancel booking: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cancel booking rows affected: %w", err)
	}
	return affected > 0, nil
}

// HasUpcomingConfirmed reports whether the event type still has CONFIRMED
// bookings ending after now. Used to block event type deletion.
func (r *BookingRepository) HasUpcomingConfirmed(ctx context.Context, eventTypeID string, now time.Time) (bool, error) {
	const query = `SELECT 1 FROM bookings WHERE event_type_id = $1 AND status = 'CONFIRMED' AND end_at >= $2 LIMIT 1`
	var one int
	err := r.db.GetContext(ctx, &one, query, eventTypeID, now)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("check upcoming bookings: %w", err)
	}
	return true, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

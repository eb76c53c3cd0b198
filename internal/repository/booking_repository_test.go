package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/calclone-api/internal/models"
	apperrors "github.com/noah-isme/calclone-api/pkg/errors"
)

func newBookingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "booking_uid", "event_type_id", "event_type_slug", "booker_name", "booker_email", "start_at", "end_at", "status", "created_at"})
}

func TestBookingRepositoryCreateConfirmed(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	windowStart := time.Date(2026, 1, 18, 18, 30, 0, 0, time.UTC)
	windowEnd := windowStart.Add(24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM event_types WHERE id = $1 FOR UPDATE")).
		WithArgs("et-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("et-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT b.id, b.booking_uid")).
		WithArgs("et-1", windowStart, windowEnd).
		WillReturnRows(bookingRows())
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	var seen []models.Booking
	booking := &models.Booking{
		EventTypeID: "et-1",
		BookerName:  "Asha",
		BookerEmail: "asha@example.com",
		StartAt:     time.Date(2026, 1, 19, 3, 30, 0, 0, time.UTC),
		EndAt:       time.Date(2026, 1, 19, 3, 45, 0, 0, time.UTC),
	}
	err := repo.CreateConfirmed(context.Background(), booking, windowStart, windowEnd, func(existing []models.Booking) error {
		seen = existing
		return nil
	})
	require.NoError(t, err)
	require.Empty(t, seen)
	require.NotEmpty(t, booking.ID)
	require.NotEmpty(t, booking.BookingUID)
	require.Equal(t, models.BookingConfirmed, booking.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryCreateConfirmedCheckRejects(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	windowStart := time.Date(2026, 1, 18, 18, 30, 0, 0, time.UTC)
	windowEnd := windowStart.Add(24 * time.Hour)

	existing := bookingRows().AddRow(
		"b-0", "uid-0", "et-1", "quick-chat-15", "Ravi", "ravi@example.com",
		time.Date(2026, 1, 19, 3, 30, 0, 0, time.UTC),
		time.Date(2026, 1, 19, 3, 45, 0, 0, time.UTC),
		"CONFIRMED", time.Now(),
	)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM event_types WHERE id = $1 FOR UPDATE")).
		WithArgs("et-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("et-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT b.id, b.booking_uid")).
		WithArgs("et-1", windowStart, windowEnd).
		WillReturnRows(existing)
	mock.ExpectRollback()

	booking := &models.Booking{EventTypeID: "et-1"}
	err := repo.CreateConfirmed(context.Background(), booking, windowStart, windowEnd, func(existing []models.Booking) error {
		require.Len(t, existing, 1)
		return apperrors.ErrSlotTaken
	})
	require.ErrorIs(t, err, apperrors.ErrSlotTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryCreateConfirmedUniqueViolation(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	windowStart := time.Date(2026, 1, 18, 18, 30, 0, 0, time.UTC)
	windowEnd := windowStart.Add(24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM event_types WHERE id = $1 FOR UPDATE")).
		WithArgs("et-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("et-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT b.id, b.booking_uid")).
		WithArgs("et-1", windowStart, windowEnd).
		WillReturnRows(bookingRows())
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uniq_confirmed_slot_per_event"})
	mock.ExpectRollback()

	booking := &models.Booking{EventTypeID: "et-1"}
	err := repo.CreateConfirmed(context.Background(), booking, windowStart, windowEnd, nil)
	require.ErrorIs(t, err, apperrors.ErrSlotTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryCancel(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = 'CANCELED'")).
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Cancel(context.Background(), "b-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryCancelAlreadyCanceled(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = 'CANCELED'")).
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Cancel(context.Background(), "b-1")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListUpcoming(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	rows := bookingRows().AddRow(
		"b-1", "uid-1", "et-1", "quick-chat-15", "Asha", "asha@example.com",
		time.Date(2026, 1, 19, 3, 30, 0, 0, time.UTC),
		time.Date(2026, 1, 19, 3, 45, 0, 0, time.UTC),
		"CONFIRMED", time.Now(),
	)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT b.id, b.booking_uid")).
		WithArgs(now).
		WillReturnRows(rows)

	bookings, err := repo.List(context.Background(), models.BookingFilter{Type: "upcoming", Now: now})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	require.Equal(t, "quick-chat-15", bookings[0].EventTypeSlug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryFindByUID(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	rows := bookingRows().AddRow(
		"b-1", "uid-1", "et-1", "quick-chat-15", "Asha", "asha@example.com",
		time.Now(), time.Now().Add(15*time.Minute), "CONFIRMED", time.Now(),
	)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT b.id, b.booking_uid")).
		WithArgs("uid-1").
		WillReturnRows(rows)

	booking, err := repo.FindByUID(context.Background(), "uid-1")
	require.NoError(t, err)
	require.Equal(t, "uid-1", booking.BookingUID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryFindByUIDNotFound(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT b.id, b.booking_uid")).
		WithArgs("missing").
		WillReturnRows(bookingRows())

	_, err := repo.FindByUID(context.Background(), "missing")
	require.True(t, IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryHasUpcomingConfirmed(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM bookings")).
		WithArgs("et-1", now).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	found, err := repo.HasUpcomingConfirmed(context.Background(), "et-1", now)
	require.NoError(t, err)
	require.True(t, found)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM bookings")).
		WithArgs("et-2", now).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	found, err = repo.HasUpcomingConfirmed(context.Background(), "et-2", now)
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

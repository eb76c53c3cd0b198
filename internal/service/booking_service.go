package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/calclone-api/internal/dto"
	"github.com/noah-isme/calclone-api/internal/models"
	"github.com/noah-isme/calclone-api/internal/repository"
	apperrors "github.com/noah-isme/calclone-api/pkg/errors"
)

type bookingRepository interface {
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByUID(ctx context.Context, uid string) (*models.Booking, error)
	CreateConfirmed(ctx context.Context, booking *models.Booking, windowStart, windowEnd time.Time, check repository.ConflictCheck) error
	Cancel(ctx context.Context, id string) (bool, error)
}

type bookingNotifier interface {
	BookingConfirmed(booking *models.Booking)
	BookingCanceled(booking *models.Booking)
}

// BookingService is the booking ledger: it owns the create and cancel
// transitions and the submission-time conflict re-validation.
type BookingService struct {
	repo         bookingRepository
	eventTypes   slotEventTypeFinder
	availability slotAvailabilityReader
	notifier     bookingNotifier
	cache        *CacheService
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewBookingService constructs the service.
func NewBookingService(repo bookingRepository, eventTypes slotEventTypeFinder, availability slotAvailabilityReader, notifier bookingNotifier, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		repo:         repo,
		eventTypes:   eventTypes,
		availability: availability,
		notifier:     notifier,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

// List returns upcoming or past bookings for the admin surface.
func (s *BookingService) List(ctx context.Context, listType string) ([]models.Booking, error) {
	if listType != "past" {
		listType = "upcoming"
	}
	bookings, err := s.repo.List(ctx, models.BookingFilter{Type: listType, Now: s.now().UTC()})
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// GetByUID returns a booking by its public identifier.
func (s *BookingService) GetByUID(ctx context.Context, uid string) (*models.Booking, error) {
	booking, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "Booking not found")
		}
		return nil, err
	}
	return booking, nil
}

// Create handles the public booking request.
//
// The slot set is re-derived inside the repository's insert transaction,
// after the event type row lock is held, so the decision is made against the
// committed state at submission time rather than whatever the client saw
// earlier. Exactly one of two concurrent requests for the same start instant
// can pass the check; the loser gets a conflict error it can distinguish
// from validation failures.
func (s *BookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fieldErrors(err)
	}

	eventType, err := s.eventTypes.FindBySlug(ctx, req.Slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "Event type not found")
		}
		return nil, err
	}
	if !eventType.Active {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "Event type not found")
	}

	profile, err := s.availability.GetDefault(ctx)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrNoAvailability
		}
		return nil, err
	}

	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load profile timezone %q: %w", profile.Timezone, err)
	}

	startAt, err := parseStartAt(req.StartAt, loc)
	if err != nil {
		return nil, apperrors.ErrInvalidStartTime
	}

	startLocal := startAt.In(loc)
	dayStart, dayEnd := localDayBounds(startLocal, loc)
	now := s.now()

	booking := &models.Booking{
		EventTypeID:   eventType.ID,
		EventTypeSlug: eventType.Slug,
		BookerName:    req.Name,
		BookerEmail:   req.Email,
		StartAt:       startAt.UTC(),
		EndAt:         startAt.Add(eventType.Duration()).UTC(),
	}

	check := func(existing []models.Booking) error {
		open, err := resolveSlots(eventType, profile.Rules, loc, startLocal, now, existing)
		if err != nil {
			return fmt.Errorf("re-derive slots: %w", err)
		}
		if !containsInstant(open, startAt) {
			return apperrors.ErrSlotTaken
		}
		return nil
	}

	if err := s.repo.CreateConfirmed(ctx, booking, dayStart, dayEnd, check); err != nil {
		if errors.Is(err, apperrors.ErrSlotTaken) {
			s.metrics.RecordBookingOutcome("conflict")
			return nil, apperrors.ErrSlotTaken
		}
		s.metrics.RecordBookingOutcome("error")
		return nil, err
	}

	s.metrics.RecordBookingOutcome("created")
	s.cache.Invalidate(ctx, fmt.Sprintf("slots:%s:*", eventType.Slug))
	if s.notifier != nil {
		s.notifier.BookingConfirmed(booking)
	}
	s.logger.Info("booking created",
		zap.String("booking_uid", booking.BookingUID),
		zap.String("slug", eventType.Slug),
		zap.Time("start_at", booking.StartAt),
	)
	return booking, nil
}

// Cancel transitions a CONFIRMED booking to CANCELED. The transition is
// terminal; canceling twice is rejected rather than silently absorbed.
func (s *BookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "Booking not found")
		}
		return nil, err
	}
	if booking.Status == models.BookingCanceled {
		return nil, apperrors.ErrAlreadyCanceled
	}

	ok, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race with another cancel between the read and the update.
		return nil, apperrors.ErrAlreadyCanceled
	}

	booking.Status = models.BookingCanceled
	s.cache.Invalidate(ctx, fmt.Sprintf("slots:%s:*", booking.EventTypeSlug))
	if s.notifier != nil {
		s.notifier.BookingCanceled(booking)
	}
	s.logger.Info("booking canceled",
		zap.String("booking_uid", booking.BookingUID),
		zap.String("slug", booking.EventTypeSlug),
	)
	return booking, nil
}

// parseStartAt accepts an ISO-8601 instant. A value without an offset is
// interpreted in the profile timezone, matching the public API contract.
func parseStartAt(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", raw, loc)
}

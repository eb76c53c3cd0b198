package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/calclone-api/internal/dto"
	"github.com/noah-isme/calclone-api/internal/models"
	"github.com/noah-isme/calclone-api/internal/repository"
	apperrors "github.com/noah-isme/calclone-api/pkg/errors"
)

type slotBookingReader interface {
	ListConfirmedOverlapping(ctx context.Context, eventTypeID string, from, to time.Time) ([]models.Booking, error)
}

type slotEventTypeFinder interface {
	FindBySlug(ctx context.Context, slug string) (*models.EventType, error)
}

type slotAvailabilityReader interface {
	GetDefault(ctx context.Context) (*models.Availability, error)
}

// SlotService is the availability resolver's HTTP-facing half: it loads the
// event type, profile and existing bookings, delegates to the slot engine
// and formats the result for the public API.
type SlotService struct {
	eventTypes   slotEventTypeFinder
	availability slotAvailabilityReader
	bookings     slotBookingReader
	cache        *CacheService
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewSlotService constructs the service.
func NewSlotService(eventTypes slotEventTypeFinder, availability slotAvailabilityReader, bookings slotBookingReader, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SlotService {
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{
		eventTypes:   eventTypes,
		availability: availability,
		bookings:     bookings,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

// Resolve returns the ordered open start instants for the slot query, as
// ISO-8601 strings carrying the profile zone offset.
//
// "No slots" is a normal answer: an inactive event type, a missing profile or
// a date without matching weekday rules all yield an empty list. Only an
// unknown slug is a not-found error.
func (s *SlotService) Resolve(ctx context.Context, q dto.SlotQuery) ([]string, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, apperrors.Clone(apperrors.ErrValidation, "slug and date required")
	}

	cacheKey := fmt.Sprintf("slots:%s:%s", q.Slug, q.Date)
	var cached []string
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	start := time.Now()
	slots, err := s.resolve(ctx, q)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveSlotResolution(time.Since(start))

	s.cache.Set(ctx, cacheKey, slots, 0)
	return slots, nil
}

func (s *SlotService) resolve(ctx context.Context, q dto.SlotQuery) ([]string, error) {
	eventType, err := s.eventTypes.FindBySlug(ctx, q.Slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "Event type not found")
		}
		return nil, err
	}
	if !eventType.Active {
		return []string{}, nil
	}

	profile, err := s.availability.GetDefault(ctx)
	if err != nil {
		if repository.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load profile timezone %q: %w", profile.Timezone, err)
	}

	date, err := time.ParseInLocation("2006-01-02", q.Date, loc)
	if err != nil {
		return nil, apperrors.ErrInvalidDate
	}

	dayStart, dayEnd := localDayBounds(date, loc)
	existing, err := s.bookings.ListConfirmedOverlapping(ctx, eventType.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	starts, err := resolveSlots(eventType, profile.Rules, loc, date, s.now(), existing)
	if err != nil {
		return nil, fmt.Errorf("resolve slots for %s on %s: %w", q.Slug, q.Date, err)
	}

	slots := make([]string, 0, len(starts))
	for _, instant := range starts {
		slots = append(slots, instant.In(loc).Format(time.RFC3339))
	}
	return slots, nil
}

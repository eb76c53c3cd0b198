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

type eventTypeRepository interface {
	List(ctx context.Context) ([]models.EventType, error)
	FindByID(ctx context.Context, id string) (*models.EventType, error)
	FindBySlug(ctx context.Context, slug string) (*models.EventType, error)
	FindActiveBySlug(ctx context.Context, slug string) (*models.EventType, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, item *models.EventType) error
	Update(ctx context.Context, item *models.EventType) error
	Delete(ctx context.Context, id string) error
}

type bookingGuard interface {
	HasUpcomingConfirmed(ctx context.Context, eventTypeID string, now time.Time) (bool, error)
}

// EventTypeService implements admin CRUD over bookable event types.
type EventTypeService struct {
	repo      eventTypeRepository
	bookings  bookingGuard
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEventTypeService constructs the service.
func NewEventTypeService(repo eventTypeRepository, bookings bookingGuard, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EventTypeService {
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventTypeService{
		repo:      repo,
		bookings:  bookings,
		cache:     cache,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns all event types for the admin surface.
func (s *EventTypeService) List(ctx context.Context) ([]models.EventType, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.EventType{}
	}
	return items, nil
}

// Get returns one event type by id.
func (s *EventTypeService) Get(ctx context.Context, id string) (*models.EventType, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "Event type not found")
		}
		return nil, err
	}
	return item, nil
}

// GetPublicBySlug returns an active event type for the public booking page.
func (s *EventTypeService) GetPublicBySlug(ctx context.Context, slug string) (*models.EventType, error) {
	item, err := s.repo.FindActiveBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "Event type not found")
		}
		return nil, err
	}
	return item, nil
}

// Create validates and persists a new event type.
func (s *EventTypeService) Create(ctx context.Context, req dto.CreateEventTypeRequest) (*models.EventType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fieldErrors(err)
	}
	if !slugPattern.MatchString(req.Slug) {
		return nil, apperrors.FieldError("slug", "enter a valid slug consisting of letters, numbers, underscores or hyphens.")
	}

	taken, err := s.repo.ExistsBySlug(ctx, req.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.FieldError("slug", "event type with this slug already exists.")
	}

	item := &models.EventType{
		Title:           req.Title,
		Description:     req.Description,
		Slug:            req.Slug,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("event type created", zap.String("id", item.ID), zap.String("slug", item.Slug))
	return item, nil
}

// Update applies a partial update and invalidates affected slot caches, since
// duration and active state both change what the resolver produces.
func (s *EventTypeService) Update(ctx context.Context, id string, req dto.UpdateEventTypeRequest) (*models.EventType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fieldErrors(err)
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previousSlug := item.Slug

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Slug != nil && *req.Slug != item.Slug {
		if !slugPattern.MatchString(*req.Slug) {
			return nil, apperrors.FieldError("slug", "enter a valid slug consisting of letters, numbers, underscores or hyphens.")
		}
		taken, err := s.repo.ExistsBySlug(ctx, *req.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.FieldError("slug", "event type with this slug already exists.")
		}
		item.Slug = *req.Slug
	}
	if req.DurationMinutes != nil {
		item.DurationMinutes = *req.DurationMinutes
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "Event type not found")
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, fmt.Sprintf("slots:%s:*", previousSlug))
	if item.Slug != previousSlug {
		s.cache.Invalidate(ctx, fmt.Sprintf("slots:%s:*", item.Slug))
	}
	return item, nil
}

// Delete removes an event type unless upcoming CONFIRMED bookings still
// reference it.
func (s *EventTypeService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	blocked, err := s.bookings.HasUpcomingConfirmed(ctx, id, s.now())
	if err != nil {
		return err
	}
	if blocked {
		return apperrors.ErrHasBookings
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.Clone(apperrors.ErrNotFound, "Event type not found")
		}
		return err
	}

	s.cache.Invalidate(ctx, fmt.Sprintf("slots:%s:*", item.Slug))
	s.logger.Info("event type deleted", zap.String("id", id), zap.String("slug", item.Slug))
	return nil
}

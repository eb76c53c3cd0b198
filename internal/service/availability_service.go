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

type availabilityRepository interface {
	GetDefault(ctx context.Context) (*models.Availability, error)
	Create(ctx context.Context, profile *models.Availability) error
	Replace(ctx context.Context, profile *models.Availability) error
}

// AvailabilityService manages the single default availability profile.
type AvailabilityService struct {
	repo            availabilityRepository
	cache           *CacheService
	validator       *validator.Validate
	logger          *zap.Logger
	defaultTimezone string
}

// NewAvailabilityService constructs the service.
func NewAvailabilityService(repo availabilityRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, defaultTimezone string) *AvailabilityService {
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultTimezone == "" {
		defaultTimezone = "Asia/Kolkata"
	}
	return &AvailabilityService{
		repo:            repo,
		cache:           cache,
		validator:       validate,
		logger:          logger,
		defaultTimezone: defaultTimezone,
	}
}

// Get returns the default profile, lazily creating it on first read.
func (s *AvailabilityService) Get(ctx context.Context) (*models.Availability, error) {
	profile, err := s.repo.GetDefault(ctx)
	if err == nil {
		return profile, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	profile = &models.Availability{Timezone: s.defaultTimezone}
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("default availability profile created", zap.String("timezone", profile.Timezone))
	return profile, nil
}

// Replace swaps the profile timezone and full rule set. The path id is
// accepted for REST symmetry but the single default profile is always the
// target, as the original API behaves.
func (s *AvailabilityService) Replace(ctx context.Context, req dto.ReplaceAvailabilityRequest) (*models.Availability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fieldErrors(err)
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, apperrors.FieldError("timezone", "enter a valid IANA timezone name.")
	}

	rules := make([]models.AvailabilityRule, 0, len(req.Rules))
	for i, in := range req.Rules {
		start, err := parseWallClock(in.StartTime)
		if err != nil {
			return nil, apperrors.FieldError("rules", fmt.Sprintf("rule %d: invalid start_time.", i))
		}
		end, err := parseWallClock(in.EndTime)
		if err != nil {
			return nil, apperrors.FieldError("rules", fmt.Sprintf("rule %d: invalid end_time.", i))
		}
		if !start.before(end) {
			return nil, apperrors.FieldError("rules", fmt.Sprintf("rule %d: end_time must be after start_time.", i))
		}
		rules = append(rules, models.AvailabilityRule{
			Weekday:   in.Weekday,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}

	profile, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	profile.Timezone = req.Timezone
	profile.Rules = rules
	if err := s.repo.Replace(ctx, profile); err != nil {
		return nil, err
	}

	// The whole weekly grid may have moved; drop every cached slot answer.
	s.cache.Invalidate(ctx, "slots:*")
	s.logger.Info("availability replaced", zap.String("timezone", profile.Timezone), zap.Int("rules", len(profile.Rules)))
	return profile, nil
}

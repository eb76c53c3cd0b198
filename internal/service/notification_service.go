package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/calclone-api/internal/models"
	"github.com/noah-isme/calclone-api/pkg/config"
	"github.com/noah-isme/calclone-api/pkg/jobs"
)

const (
	jobBookingConfirmed = "booking.confirmed"
	jobBookingCanceled  = "booking.canceled"
)

// bookingNotification is the job payload for booking emails.
type bookingNotification struct {
	BookingUID    string `json:"booking_uid"`
	EventTypeSlug string `json:"event_type_slug"`
	BookerName    string `json:"booker_name"`
	BookerEmail   string `json:"booker_email"`
	StartAt       string `json:"start_at"`
}

// NotificationService delivers booking confirmation and cancellation emails
// through the background job queue. Delivery is a logged stub; the queue,
// retry and shutdown semantics are the real plumbing.
type NotificationService struct {
	queue   *jobs.Queue
	logger  *zap.Logger
	from    string
	enabled bool
}

// NewNotificationService constructs the service and its worker queue.
func NewNotificationService(cfg config.NotificationsConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{
		logger:  logger,
		from:    cfg.FromAddress,
		enabled: cfg.Enabled,
	}
	s.queue = jobs.NewQueue("notifications", s.deliver, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the notification workers.
func (s *NotificationService) Start(ctx context.Context) {
	if !s.enabled {
		return
	}
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *NotificationService) Stop() {
	if !s.enabled {
		return
	}
	s.queue.Stop()
}

// BookingConfirmed enqueues a confirmation email for a new booking.
func (s *NotificationService) BookingConfirmed(booking *models.Booking) {
	s.enqueue(jobBookingConfirmed, booking)
}

// BookingCanceled enqueues a cancellation notice.
func (s *NotificationService) BookingCanceled(booking *models.Booking) {
	s.enqueue(jobBookingCanceled, booking)
}

func (s *NotificationService) enqueue(jobType string, booking *models.Booking) {
	if !s.enabled || booking == nil {
		return
	}
	job := jobs.Job{
		ID:   uuid.NewString(),
		Type: jobType,
		Payload: bookingNotification{
			BookingUID:    booking.BookingUID,
			EventTypeSlug: booking.EventTypeSlug,
			BookerName:    booking.BookerName,
			BookerEmail:   booking.BookerEmail,
			StartAt:       booking.StartAt.UTC().Format(time.RFC3339),
		},
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue booking notification", zap.String("type", jobType), zap.Error(err))
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(bookingNotification)
	if !ok {
		return fmt.Errorf("unexpected payload type for job %s", job.ID)
	}

	var subject string
	switch job.Type {
	case jobBookingConfirmed:
		subject = fmt.Sprintf("Booking confirmed: %s", payload.EventTypeSlug)
	case jobBookingCanceled:
		subject = fmt.Sprintf("Booking canceled: %s", payload.EventTypeSlug)
	default:
		return fmt.Errorf("unknown notification job type %q", job.Type)
	}

	// Stand-in for an SMTP/provider integration.
	s.logger.Info("notification email sent",
		zap.String("from", s.from),
		zap.String("to", payload.BookerEmail),
		zap.String("subject", subject),
		zap.String("booking_uid", payload.BookingUID),
		zap.String("start_at", payload.StartAt),
	)
	return nil
}

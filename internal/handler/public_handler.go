package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/calclone-api/internal/dto"
	"github.com/noah-isme/calclone-api/internal/models"
	apperrors "github.com/noah-isme/calclone-api/pkg/errors"
	"github.com/noah-isme/calclone-api/pkg/response"
)

type publicEventTypeService interface {
	GetPublicBySlug(ctx context.Context, slug string) (*models.EventType, error)
}

type publicSlotService interface {
	Resolve(ctx context.Context, q dto.SlotQuery) ([]string, error)
}

type publicBookingService interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (*models.Booking, error)
	GetByUID(ctx context.Context, uid string) (*models.Booking, error)
}

// PublicHandler exposes the visitor-facing booking endpoints.
type PublicHandler struct {
	eventTypes publicEventTypeService
	slots      publicSlotService
	bookings   publicBookingService
}

// NewPublicHandler builds a new handler.
func NewPublicHandler(eventTypes publicEventTypeService, slots publicSlotService, bookings publicBookingService) *PublicHandler {
	return &PublicHandler{eventTypes: eventTypes, slots: slots, bookings: bookings}
}

// EventType godoc
// @Summary Get an active event type by slug
// @Tags Public
// @Produce json
// @Param slug path string true "Event type slug"
// @Success 200 {object} models.EventType
// @Router /public/event-types/{slug} [get]
func (h *PublicHandler) EventType(c *gin.Context) {
	item, err := h.eventTypes.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Slots godoc
// @Summary List open slots for a date
// @Tags Public
// @Produce json
// @Param slug query string true "Event type slug"
// @Param date query string true "Date (YYYY-MM-DD) in the profile timezone"
// @Success 200 {array} string
// @Router /public/slots [get]
func (h *PublicHandler) Slots(c *gin.Context) {
	q := dto.SlotQuery{
		Slug: c.Query("slug"),
		Date: c.Query("date"),
	}
	slots, err := h.slots.Resolve(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, slots)
}

// CreateBooking godoc
// @Summary Book an open slot
// @Tags Public
// @Accept json
// @Produce json
// @Param payload body dto.CreateBookingRequest true "Booking request"
// @Success 201 {object} models.Booking
// @Failure 409 {object} map[string]string "slot is no longer available"
// @Router /public/bookings [post]
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}
	booking, err := h.bookings.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// Booking godoc
// @Summary Get a booking by its public identifier
// @Tags Public
// @Produce json
// @Param uid path string true "Booking UID"
// @Success 200 {object} models.Booking
// @Router /public/bookings/{uid} [get]
func (h *PublicHandler) Booking(c *gin.Context) {
	booking, err := h.bookings.GetByUID(c.Request.Context(), c.Param("uid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, booking)
}

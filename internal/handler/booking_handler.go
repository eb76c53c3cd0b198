package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/calclone-api/internal/models"
	"github.com/noah-isme/calclone-api/pkg/response"
)

type bookingService interface {
	List(ctx context.Context, listType string) ([]models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
}

type bookingExporter interface {
	Render(ctx context.Context, listType, format string) ([]byte, string, string, error)
}

// BookingHandler exposes admin booking review endpoints.
type BookingHandler struct {
	service  bookingService
	exporter bookingExporter
}

// NewBookingHandler builds a new handler.
func NewBookingHandler(service bookingService, exporter bookingExporter) *BookingHandler {
	return &BookingHandler{service: service, exporter: exporter}
}

// List godoc
// @Summary List bookings relative to now
// @Tags Bookings
// @Produce json
// @Param type query string false "upcoming (default) or past"
// @Success 200 {array} models.Booking
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context(), c.DefaultQuery("type", "upcoming"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bookings)
}

// Cancel godoc
// @Summary Cancel a confirmed booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} models.Booking
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	booking, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, booking)
}

// Export godoc
// @Summary Export bookings as CSV or PDF
// @Tags Bookings
// @Produce text/csv
// @Param type query string false "upcoming (default) or past"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /bookings/export [get]
func (h *BookingHandler) Export(c *gin.Context) {
	payload, contentType, filename, err := h.exporter.Render(c.Request.Context(), c.DefaultQuery("type", "upcoming"), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}

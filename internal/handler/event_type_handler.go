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

type eventTypeService interface {
	List(ctx context.Context) ([]models.EventType, error)
	Create(ctx context.Context, req dto.CreateEventTypeRequest) (*models.EventType, error)
	Update(ctx context.Context, id string, req dto.UpdateEventTypeRequest) (*models.EventType, error)
	Delete(ctx context.Context, id string) error
}

// EventTypeHandler exposes admin event type management endpoints.
type EventTypeHandler struct {
	service eventTypeService
}

// NewEventTypeHandler builds a new handler.
func NewEventTypeHandler(service eventTypeService) *EventTypeHandler {
	return &EventTypeHandler{service: service}
}

// List godoc
// @Summary List event types
// @Tags Event Types
// @Produce json
// @Success 200 {array} models.EventType
// @Router /event-types [get]
func (h *EventTypeHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Create godoc
// @Summary Create an event type
// @Tags Event Types
// @Accept json
// @Produce json
// @Param payload body dto.CreateEventTypeRequest true "Event type payload"
// @Success 201 {object} models.EventType
// @Router /event-types [post]
func (h *EventTypeHandler) Create(c *gin.Context) {
	var req dto.CreateEventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid event type payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Partially update an event type
// @Tags Event Types
// @Accept json
// @Produce json
// @Param id path string true "Event type ID"
// @Param payload body dto.UpdateEventTypeRequest true "Fields to update"
// @Success 200 {object} models.EventType
// @Router /event-types/{id} [patch]
func (h *EventTypeHandler) Update(c *gin.Context) {
	var req dto.UpdateEventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid event type payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Delete godoc
// @Summary Delete an event type
// @Tags Event Types
// @Param id path string true "Event type ID"
// @Success 204 {string} string ""
// @Router /event-types/{id} [delete]
func (h *EventTypeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

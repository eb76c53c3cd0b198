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

type availabilityService interface {
	Get(ctx context.Context) (*models.Availability, error)
	Replace(ctx context.Context, req dto.ReplaceAvailabilityRequest) (*models.Availability, error)
}

// AvailabilityHandler exposes the default availability profile endpoints.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler builds a new handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Get godoc
// @Summary Get the availability profile
// @Tags Availability
// @Produce json
// @Success 200 {object} models.Availability
// @Router /availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// Replace godoc
// @Summary Replace the availability profile
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param payload body dto.ReplaceAvailabilityRequest true "Timezone and rules"
// @Success 200 {object} models.Availability
// @Router /availability/{id} [put]
func (h *AvailabilityHandler) Replace(c *gin.Context) {
	var req dto.ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability payload"))
		return
	}
	profile, err := h.service.Replace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

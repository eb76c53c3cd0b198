package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/calclone-api/internal/dto"
	"github.com/noah-isme/calclone-api/internal/models"
	apperrors "github.com/noah-isme/calclone-api/pkg/errors"
)

type eventTypeServiceMock struct {
	items     []models.EventType
	created   *models.EventType
	createErr error
	updated   *models.EventType
	updateErr error
	deleteErr error
}

func (m *eventTypeServiceMock) List(_ context.Context) ([]models.EventType, error) {
	return m.items, nil
}

func (m *eventTypeServiceMock) Create(_ context.Context, _ dto.CreateEventTypeRequest) (*models.EventType, error) {
	return m.created, m.createErr
}

func (m *eventTypeServiceMock) Update(_ context.Context, _ string, _ dto.UpdateEventTypeRequest) (*models.EventType, error) {
	return m.updated, m.updateErr
}

func (m *eventTypeServiceMock) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

func TestEventTypeHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &eventTypeServiceMock{items: []models.EventType{{ID: "et-1", Slug: "quick-chat-15", DurationMinutes: 15, Active: true}}}
	handler := NewEventTypeHandler(service)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/event-types/", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "quick-chat-15", body[0]["slug"])
}

func TestEventTypeHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &eventTypeServiceMock{created: &models.EventType{ID: "et-1", Slug: "quick-chat-15", DurationMinutes: 15, Active: true}}
	handler := NewEventTypeHandler(service)

	payload, _ := json.Marshal(dto.CreateEventTypeRequest{Title: "Quick Chat", Slug: "quick-chat-15", DurationMinutes: 15})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/event-types/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestEventTypeHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEventTypeHandler(&eventTypeServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/event-types/", bytes.NewReader([]byte(`{broken`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventTypeHandlerCreateDuplicateSlug(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &eventTypeServiceMock{createErr: apperrors.FieldError("slug", "event type with this slug already exists.")}
	handler := NewEventTypeHandler(service)

	payload, _ := json.Marshal(dto.CreateEventTypeRequest{Title: "Dup", Slug: "quick-chat-15", DurationMinutes: 15})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/event-types/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"event type with this slug already exists."}, body["slug"])
}

func TestEventTypeHandlerUpdate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &eventTypeServiceMock{updated: &models.EventType{ID: "et-1", Title: "Renamed", Slug: "quick-chat-15", DurationMinutes: 15, Active: true}}
	handler := NewEventTypeHandler(service)

	title := "Renamed"
	payload, _ := json.Marshal(dto.UpdateEventTypeRequest{Title: &title})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/event-types/et-1/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "et-1"}}

	handler.Update(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEventTypeHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEventTypeHandler(&eventTypeServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/event-types/et-1/", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "et-1"}}

	handler.Delete(c)
	// Flush gin's buffered status header; outside the engine nothing calls
	// WriteHeaderNow for body-less responses, leaving the recorder at 200.
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestEventTypeHandlerDeleteBlocked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEventTypeHandler(&eventTypeServiceMock{deleteErr: apperrors.ErrHasBookings})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/event-types/et-1/", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "et-1"}}

	handler.Delete(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "HAS_BOOKINGS", body["code"])
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/noah-isme/calclone-api/pkg/errors"
)

// The wire contract follows the original client: successful responses are the
// bare payload, errors are either {"detail": "...", "code": "..."} or a
// field-keyed validation map such as {"slug": ["taken"]}.

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error normalises the error and writes it in the client contract shape.
func Error(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")

	if len(appErr.Fields) > 0 {
		body := make(gin.H, len(appErr.Fields))
		for field, messages := range appErr.Fields {
			body[field] = messages
		}
		c.JSON(appErr.Status, body)
		return
	}

	body := gin.H{"detail": appErr.Message}
	if appErr.Code != "" {
		body["code"] = appErr.Code
	}
	c.JSON(appErr.Status, body)
}

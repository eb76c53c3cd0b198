package dto

// CreateEventTypeRequest defines payload for creating an event type.
type CreateEventTypeRequest struct {
	Title           string `json:"title" validate:"required,max=120"`
	Description     string `json:"description"`
	Slug            string `json:"slug" validate:"required,max=120"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=5"`
	Active          *bool  `json:"active"`
}

// UpdateEventTypeRequest defines a partial update. Nil fields are untouched.
type UpdateEventTypeRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=120"`
	Description     *string `json:"description"`
	Slug            *string `json:"slug" validate:"omitempty,max=120"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=5"`
	Active          *bool   `json:"active"`
}

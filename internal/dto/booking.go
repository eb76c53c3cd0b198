package dto

// CreateBookingRequest is the public booking payload. Field names follow the
// public API contract rather than the storage model.
type CreateBookingRequest struct {
	Slug    string `json:"slug" validate:"required"`
	StartAt string `json:"startAt" validate:"required"`
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
}

// SlotQuery identifies one day of one event type for slot resolution.
type SlotQuery struct {
	Slug string `form:"slug" validate:"required"`
	Date string `form:"date" validate:"required"`
}

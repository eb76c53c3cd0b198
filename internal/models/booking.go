package models

import "time"

// BookingStatus is the booking state. The only legal transition is
// CONFIRMED -> CANCELED; CANCELED is terminal.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCanceled  BookingStatus = "CANCELED"
)

// Booking is a reservation of one slot by an external visitor. Instants are
// stored in UTC; end_at = start_at + event type duration.
type Booking struct {
	ID            string        `db:"id" json:"id"`
	BookingUID    string        `db:"booking_uid" json:"booking_uid"`
	EventTypeID   string        `db:"event_type_id" json:"event_type"`
	EventTypeSlug string        `db:"event_type_slug" json:"event_type_slug"`
	BookerName    string        `db:"booker_name" json:"booker_name"`
	BookerEmail   string        `db:"booker_email" json:"booker_email"`
	StartAt       time.Time     `db:"start_at" json:"start_at"`
	EndAt         time.Time     `db:"end_at" json:"end_at"`
	Status        BookingStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// BookingFilter selects bookings relative to now for admin review.
type BookingFilter struct {
	Type string // "upcoming" or "past"
	Now  time.Time
}

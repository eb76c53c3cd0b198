package models

import "time"

// Availability is the single default weekly availability profile. All rule
// times are wall-clock values interpreted in the profile timezone.
type Availability struct {
	ID        string             `db:"id" json:"id"`
	Timezone  string             `db:"timezone" json:"timezone"`
	Rules     []AvailabilityRule `db:"-" json:"rules"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"-"`
}

// AvailabilityRule is one recurring weekly open window. Weekday follows the
// profile contract: 0=Monday .. 6=Sunday.
type AvailabilityRule struct {
	ID             string `db:"id" json:"id"`
	AvailabilityID string `db:"availability_id" json:"-"`
	Weekday        int    `db:"weekday" json:"weekday"`
	StartTime      string `db:"start_time" json:"start_time"`
	EndTime        string `db:"end_time" json:"end_time"`
}

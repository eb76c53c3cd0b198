package dto

// AvailabilityRuleInput is one weekly rule in a replace request.
type AvailabilityRuleInput struct {
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// ReplaceAvailabilityRequest replaces the profile timezone and full rule set.
type ReplaceAvailabilityRequest struct {
	Timezone string                  `json:"timezone" validate:"required"`
	Rules    []AvailabilityRuleInput `json:"rules" validate:"dive"`
}

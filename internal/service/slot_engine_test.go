package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/calclone-api/internal/models"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func quickChat() *models.EventType {
	return &models.EventType{ID: "et-1", Slug: "quick-chat-15", DurationMinutes: 15, Active: true}
}

func mondayNineToFive() []models.AvailabilityRule {
	return []models.AvailabilityRule{{Weekday: 0, StartTime: "09:00", EndTime: "17:00"}}
}

func TestResolveSlotsFullMonday(t *testing.T) {
	loc := mustLoadLocation(t, "Asia/Kolkata")
	// 2026-01-19 is a Monday.
	date := time.Date(2026, 1, 19, 0, 0, 0, 0, loc)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)

	slots, err := resolveSlots(quickChat(), mondayNineToFive(), loc, date, now, nil)
	require.NoError(t, err)

	// 09:00 .. 16:45 at a 15 minute step.
	require.Len(t, slots, 32)
	assert.Equal(t, time.Date(2026, 1, 19, 9, 0, 0, 0, loc), slots[0])
	assert.Equal(t, time.Date(2026, 1, 19, 16, 45, 0, 0, loc), slots[len(slots)-1])
	for _, s := range slots {
		end := s.Add(15 * time.Minute)
		assert.False(t, s.Before(time.Date(2026, 1, 19, 9, 0, 0, 0, loc)))
		assert.False(t, end.After(time.Date(2026, 1, 19, 17, 0, 0, 0, loc)))
	}
}

func TestResolveSlotsClipsRuleEnd(t *testing.T) {
	loc := mustLoadLocation(t, "Asia/Kolkata")
	date := time.Date(2026, 1, 19, 0, 0, 0, 0, loc)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)

	eventType := &models.EventType{ID: "et-2", Slug: "deep-dive-30", DurationMinutes: 30, Active: true}
	rules := []models.AvailabilityRule{{Weekday: 0, StartTime: "09:00", EndTime: "10:15"}}

	slots, err := resolveSlots(eventType, rules, loc, date, now, nil)
	require.NoError(t, err)

	// 09:00 and 09:30 fit; a 10:00 slot would end at 10:30, past the rule.
	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2026, 1, 19, 9, 30, 0, 0, loc), slots[1])
}

func TestResolveSlotsExcludesPast(t *testing.T) {
	loc := mustLoadLocation(t, "Asia/Kolkata")
	date := time.Date(2026, 1, 19, 0, 0, 0, 0, loc)
	now := time.Date(2026, 1, 19, 12, 5, 0, 0, loc)

	slots, err := resolveSlots(quickChat(), mondayNineToFive(), loc, date, now, nil)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	// 12:00 started five minutes ago; the first offered slot is 12:15.
	assert.Equal(t, time.Date(2026, 1, 19, 12, 15, 0, 0, loc), slots[0])
}

func TestResolveSlotsExcludesOverlappingBookings(t *testing.T) {
	loc := mustLoadLocation(t, "Asia/Kolkata")
	date := time.Date(2026, 1, 19, 0, 0, 0, 0, loc)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)

	eventType := &models.EventType{ID: "et-2", Slug: "deep-dive-30", DurationMinutes: 30, Active: true}
	rules := []models.AvailabilityRule{{Weekday: 0, StartTime: "09:00", EndTime: "11:00"}}

	// A booking from 09:45 to 10:15 straddles the 09:30 and 10:00 grid slots.
	existing := []models.Booking{{
		Status:  models.BookingConfirmed,
		StartAt: time.Date(2026, 1, 19, 9, 45, 0, 0, loc).UTC(),
		EndAt:   time.Date(2026, 1, 19, 10, 15, 0, 0, loc).UTC(),
	}}

	slots, err := resolveSlots(eventType, rules, loc, date, now, existing)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2026, 1, 19, 9, 0, 0, 0, loc), slots[0])
	assert.Equal(t, time.Date(2026, 1, 19, 10, 30, 0, 0, loc), slots[1])
}

func TestResolveSlotsIgnoresCanceledBookings(t *testing.T) {
	loc := mustLoadLocation(t, "Asia/Kolkata")
	date := time.Date(2026, 1, 19, 0, 0, 0, 0, loc)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)

	existing := []models.Booking{{
		Status:  models.BookingCanceled,
		StartAt: time.Date(2026, 1, 19, 9, 0, 0, 0, loc).UTC(),
		EndAt:   time.Date(2026, 1, 19, 9, 15, 0, 0, loc).UTC(),
	}}

	slots, err := resolveSlots(quickChat(), mondayNineToFive(), loc, date, now, existing)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, time.Date(2026, 1, 19, 9, 0, 0, 0, loc), slots[0])
}

func TestResolveSlotsNoRulesForWeekday(t *testing.T) {
	loc := mustLoadLocation(t, "Asia/Kolkata")
	// 2026-01-20 is a Tuesday; rules only cover Monday.
	date := time.Date(2026, 1, 20, 0, 0, 0, 0, loc)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)

	slots, err := resolveSlots(quickChat(), mondayNineToFive(), loc, date, now, nil)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestResolveSlotsMergesMultipleRules(t *testing.T) {
	loc := mustLoadLocation(t, "Asia/Kolkata")
	date := time.Date(2026, 1, 19, 0, 0, 0, 0, loc)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)

	eventType := &models.EventType{ID: "et-3", Slug: "hour-long", DurationMinutes: 60, Active: true}
	rules := []models.AvailabilityRule{
		{Weekday: 0, StartTime: "14:00", EndTime: "16:00"},
		{Weekday: 0, StartTime: "09:00", EndTime: "11:00"},
	}

	slots, err := resolveSlots(eventType, rules, loc, date, now, nil)
	require.NoError(t, err)

	require.Len(t, slots, 4)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Before(slots[i]))
	}
	assert.Equal(t, time.Date(2026, 1, 19, 9, 0, 0, 0, loc), slots[0])
	assert.Equal(t, time.Date(2026, 1, 19, 15, 0, 0, 0, loc), slots[3])
}

func TestResolveSlotsHandlesDSTTransition(t *testing.T) {
	loc := mustLoadLocation(t, "America/New_York")
	// 2026-03-08: clocks jump from 02:00 EST to 03:00 EDT.
	date := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)

	eventType := &models.EventType{ID: "et-4", Slug: "morning", DurationMinutes: 30, Active: true}
	rules := []models.AvailabilityRule{{Weekday: 6, StartTime: "09:00", EndTime: "10:00"}}

	slots, err := resolveSlots(eventType, rules, loc, date, now, nil)
	require.NoError(t, err)

	// Wall-clock 09:00 resolves through the tz database to 13:00 UTC (EDT).
	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2026, 3, 8, 13, 0, 0, 0, time.UTC), slots[0].UTC())
}

func TestParseWallClock(t *testing.T) {
	cases := []struct {
		raw     string
		want    wallClock
		wantErr bool
	}{
		{raw: "09:00", want: wallClock{hour: 9}},
		{raw: "17:30", want: wallClock{hour: 17, minute: 30}},
		{raw: "09:00:00", want: wallClock{hour: 9}},
		{raw: "23:59:59", want: wallClock{hour: 23, minute: 59, second: 59}},
		{raw: "24:00", wantErr: true},
		{raw: "nine", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseWallClock(tc.raw)
		if tc.wantErr {
			assert.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestProfileWeekday(t *testing.T) {
	loc := mustLoadLocation(t, "UTC")
	monday := time.Date(2026, 1, 19, 0, 0, 0, 0, loc)
	sunday := time.Date(2026, 1, 18, 0, 0, 0, 0, loc)
	assert.Equal(t, 0, profileWeekday(monday))
	assert.Equal(t, 6, profileWeekday(sunday))
}

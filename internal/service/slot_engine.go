package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/noah-isme/calclone-api/internal/models"
)

// The slot engine is the availability resolver core: pure functions from
// weekly rules, existing bookings and a clock to concrete bookable instants.
// Both the public slot query and the booking ledger's submission-time
// re-validation go through resolveSlots so the two can never disagree.

// profileWeekday maps a local instant to the rule contract (0=Mon .. 6=Sun).
func profileWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// wallClock is a time-of-day with no date attached.
type wallClock struct {
	hour, minute, second int
}

// parseWallClock parses "15:04" or "15:04:05" rule times.
func parseWallClock(raw string) (wallClock, error) {
	var h, m, s int
	if _, err := fmt.Sscanf(raw, "%d:%d:%d", &h, &m, &s); err != nil {
		s = 0
		if _, err := fmt.Sscanf(raw, "%d:%d", &h, &m); err != nil {
			return wallClock{}, fmt.Errorf("invalid wall-clock time %q", raw)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return wallClock{}, fmt.Errorf("wall-clock time %q out of range", raw)
	}
	return wallClock{hour: h, minute: m, second: s}, nil
}

// on anchors the wall-clock time on the given calendar date in loc. The tz
// database resolves the offset, which keeps DST transition days correct.
func (w wallClock) on(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), w.hour, w.minute, w.second, 0, loc)
}

func (w wallClock) before(other wallClock) bool {
	if w.hour != other.hour {
		return w.hour < other.hour
	}
	if w.minute != other.minute {
		return w.minute < other.minute
	}
	return w.second < other.second
}

// localDayBounds returns the [start, end) of the calendar date in loc.
// Using date arithmetic on the location keeps DST transition days correct:
// the window is however long the civil day actually is.
func localDayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end
}

// overlapsAny reports whether [start, end) intersects any CONFIRMED interval.
func overlapsAny(start, end time.Time, existing []models.Booking) bool {
	for i := range existing {
		b := &existing[i]
		if b.Status != models.BookingConfirmed {
			continue
		}
		if start.Before(b.EndAt) && end.After(b.StartAt) {
			return true
		}
	}
	return false
}

// resolveSlots computes the ordered open start instants for one event type on
// one calendar date.
//
// Policy (fixed for the whole system):
//   - step size equals the event duration;
//   - a slot is emitted only when start + duration stays within the rule
//     window, so availability is never overrun;
//   - slots starting before now are dropped;
//   - slots overlapping any CONFIRMED booking interval are dropped;
//   - a date with no matching weekday rules yields an empty, non-nil slice.
//
// Rule wall-clock times are anchored on the local midnight of the date, so
// conversion to absolute instants goes through the tz database rather than
// manual offset arithmetic.
func resolveSlots(eventType *models.EventType, rules []models.AvailabilityRule, loc *time.Location, date time.Time, now time.Time, existing []models.Booking) ([]time.Time, error) {
	duration := eventType.Duration()
	if duration <= 0 {
		return []time.Time{}, nil
	}

	dayStart, _ := localDayBounds(date, loc)
	weekday := profileWeekday(dayStart)

	slots := []time.Time{}
	for i := range rules {
		rule := &rules[i]
		if rule.Weekday != weekday {
			continue
		}

		ruleStart, err := parseWallClock(rule.StartTime)
		if err != nil {
			return nil, err
		}
		ruleEnd, err := parseWallClock(rule.EndTime)
		if err != nil {
			return nil, err
		}
		if !ruleStart.before(ruleEnd) {
			continue
		}

		windowStart := ruleStart.on(date, loc)
		windowEnd := ruleEnd.on(date, loc)

		for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(duration) {
			if cur.Before(now) {
				continue
			}
			if overlapsAny(cur, cur.Add(duration), existing) {
				continue
			}
			slots = append(slots, cur)
		}
	}

	sortInstants(slots)
	return slots, nil
}

// containsInstant reports whether the instant is one of the open starts.
func containsInstant(slots []time.Time, instant time.Time) bool {
	for _, s := range slots {
		if s.Equal(instant) {
			return true
		}
	}
	return false
}

// sortInstants orders ascending; multiple rules per weekday may interleave.
func sortInstants(slots []time.Time) {
	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
}

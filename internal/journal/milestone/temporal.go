package milestone

import (
	"fmt"
	"math"
	"time"
)

// DefaultReminderWindowDays is the lookahead used by UpcomingReminders when
// the caller does not specify a window.
const DefaultReminderWindowDays = 30

// upcomingWindowDays is the fixed lookahead for IsUpcoming.
const upcomingWindowDays = 7

// midnight truncates t to 00:00:00 in its own location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the whole number of days from now until eventDate, both
// normalized to midnight. Zero means today, negative means the event has
// passed. Time-of-day on either input never affects the result.
func DaysUntil(eventDate, now time.Time) int {
	diff := midnight(eventDate).Sub(midnight(now))
	return int(math.Ceil(diff.Hours() / 24))
}

// IsUpcoming reports whether eventDate falls inside the fixed 7-day lookahead
// window, today included.
func IsUpcoming(eventDate, now time.Time) bool {
	days := DaysUntil(eventDate, now)
	return days >= 0 && days <= upcomingWindowDays
}

// IsToday reports whether eventDate and now share the same calendar day.
func IsToday(eventDate, now time.Time) bool {
	return eventDate.Year() == now.Year() &&
		eventDate.Month() == now.Month() &&
		eventDate.Day() == now.Day()
}

// IsPast reports whether eventDate is strictly before now. The comparison is
// on raw instants, not midnight-normalized, so an event earlier today is
// already "past" here while DaysUntil still reports zero. Both views are
// relied on by callers; keep them distinct.
func IsPast(eventDate, now time.Time) bool {
	return eventDate.Before(now)
}

// UpcomingReminders filters milestones to those whose date falls in
// [now, now + daysAhead] inclusive, comparing full timestamps. Input order is
// preserved. Records with a zero date are skipped rather than failing, since
// callers iterate heterogeneous and possibly incomplete lists. A daysAhead
// of 0 yields only exact-instant matches.
func UpcomingReminders(milestones []*Milestone, daysAhead int, now time.Time) []*Milestone {
	horizon := now.AddDate(0, 0, daysAhead)

	var upcoming []*Milestone
	for _, m := range milestones {
		if m == nil || m.Date.IsZero() {
			continue
		}
		if m.Date.Before(now) || m.Date.After(horizon) {
			continue
		}
		upcoming = append(upcoming, m)
	}
	return upcoming
}

// reminderOffsets maps each reminder option to its offset in days before the
// event date.
var reminderOffsets = map[string]int{
	ReminderOnDate:       0,
	ReminderOneDayBefore: 1,
	ReminderThreeDays:    3,
	ReminderOneWeek:      7,
	ReminderOneMonth:     30,
}

// ReminderDate returns the date a reminder should fire for the given option,
// or nil when the option is "none". Unrecognized options degrade to nil
// rather than erroring.
func ReminderDate(milestoneDate time.Time, reminderOption string) *time.Time {
	offset, ok := reminderOffsets[reminderOption]
	if !ok {
		return nil
	}

	reminder := milestoneDate.AddDate(0, 0, -offset)
	return &reminder
}

// ShouldTriggerReminder reports whether reminderDate lands on the same
// calendar day as today. A nil reminderDate never triggers.
func ShouldTriggerReminder(reminderDate *time.Time, today time.Time) bool {
	if reminderDate == nil {
		return false
	}
	return midnight(*reminderDate).Equal(midnight(today))
}

// FormatDaysUntil renders a day count as display text.
//
// The 7 and 30 special cases deliberately shadow the generic "N days away"
// branch; the exact strings are load-bearing for clients.
func FormatDaysUntil(days int) string {
	switch {
	case days == 0:
		return "Today!"
	case days == 1:
		return "Tomorrow"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	case days == 7:
		return "1 week away"
	case days == 30:
		return "1 month away"
	default:
		return fmt.Sprintf("%d days away", days)
	}
}

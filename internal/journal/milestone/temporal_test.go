package milestone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepsakehq/keepsake/internal/journal/milestone"
	"github.com/keepsakehq/keepsake/pkg/pointer"
)

// date builds a local midnight timestamp for readability.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

/*
TestDaysUntil pins the midnight-normalized day-difference math.
*/
func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, time.June, 15, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name  string
		event time.Time
		want  int
	}{
		{"same_day_later_hour", time.Date(2025, time.June, 15, 23, 59, 0, 0, time.Local), 0},
		{"same_day_earlier_hour", time.Date(2025, time.June, 15, 1, 0, 0, 0, time.Local), 0},
		{"tomorrow", date(2025, time.June, 16), 1},
		{"one_week_out", date(2025, time.June, 22), 7},
		{"one_month_out", date(2025, time.July, 15), 30},
		{"yesterday", date(2025, time.June, 14), -1},
		{"ten_days_ago", date(2025, time.June, 5), -10},
		{"across_month_boundary", date(2025, time.July, 1), 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, milestone.DaysUntil(tt.event, now))
		})
	}
}

/*
TestDaysUntil_TimeOfDayInvariance proves time-of-day on either input never
changes the result.
*/
func TestDaysUntil_TimeOfDayInvariance(t *testing.T) {
	event := date(2025, time.June, 20)

	for hour := 0; hour < 24; hour++ {
		now := time.Date(2025, time.June, 15, hour, 45, 12, 0, time.Local)
		assert.Equal(t, 5, milestone.DaysUntil(event, now), "hour=%d", hour)

		shiftedEvent := time.Date(2025, time.June, 20, hour, 3, 0, 0, time.Local)
		assert.Equal(t, 5, milestone.DaysUntil(shiftedEvent, date(2025, time.June, 15)), "event hour=%d", hour)
	}
}

/*
TestIsUpcoming checks the inclusive 7-day lookahead window boundaries.
*/
func TestIsUpcoming(t *testing.T) {
	now := date(2025, time.June, 15)

	tests := []struct {
		name  string
		event time.Time
		want  bool
	}{
		{"today_counts", date(2025, time.June, 15), true},
		{"seventh_day_inclusive", date(2025, time.June, 22), true},
		{"eighth_day_excluded", date(2025, time.June, 23), false},
		{"yesterday_excluded", date(2025, time.June, 14), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, milestone.IsUpcoming(tt.event, now))
		})
	}
}

/*
TestIsToday_And_IsPast pins the two distinct "now" comparisons: calendar-day
equality versus raw-instant ordering.
*/
func TestIsToday_And_IsPast(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local)

	earlierToday := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.Local)
	laterToday := time.Date(2025, time.June, 15, 18, 0, 0, 0, time.Local)

	assert.True(t, milestone.IsToday(earlierToday, now))
	assert.True(t, milestone.IsToday(laterToday, now))
	assert.False(t, milestone.IsToday(date(2025, time.June, 16), now))

	// IsPast is raw-instant: an event earlier today is past while DaysUntil
	// still reports zero
	assert.True(t, milestone.IsPast(earlierToday, now))
	assert.False(t, milestone.IsPast(laterToday, now))
	assert.Equal(t, 0, milestone.DaysUntil(earlierToday, now))
}

/*
TestUpcomingReminders exercises the full-timestamp inclusive window, order
preservation, and zero-date filtering.
*/
func TestUpcomingReminders(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.Local)

	within := &milestone.Milestone{ID: "a", Date: date(2025, time.June, 20)}
	boundary := &milestone.Milestone{ID: "b", Date: now.AddDate(0, 0, 30)}
	beyond := &milestone.Milestone{ID: "c", Date: now.AddDate(0, 0, 30).Add(time.Second)}
	past := &milestone.Milestone{ID: "d", Date: date(2025, time.June, 14)}
	zeroDate := &milestone.Milestone{ID: "e"}

	t.Run("default_window_and_order", func(t *testing.T) {
		// Caller order is deliberately not date-sorted; output must preserve it
		input := []*milestone.Milestone{boundary, zeroDate, within, beyond, past}
		got := milestone.UpcomingReminders(input, milestone.DefaultReminderWindowDays, now)

		require.Len(t, got, 2)
		assert.Equal(t, "b", got[0].ID)
		assert.Equal(t, "a", got[1].ID)
	})

	t.Run("zero_window_matches_exact_instant_only", func(t *testing.T) {
		exact := &milestone.Milestone{ID: "x", Date: now}
		got := milestone.UpcomingReminders([]*milestone.Milestone{within, exact}, 0, now)

		require.Len(t, got, 1)
		assert.Equal(t, "x", got[0].ID)
	})

	t.Run("nil_and_empty_inputs", func(t *testing.T) {
		assert.Empty(t, milestone.UpcomingReminders(nil, 30, now))
		assert.Empty(t, milestone.UpcomingReminders([]*milestone.Milestone{nil, zeroDate}, 30, now))
	})
}

/*
TestReminderDate checks the fixed offset table and the nil degradation for
"none" and unknown options.
*/
func TestReminderDate(t *testing.T) {
	eventDate := date(2025, time.June, 15)

	tests := []struct {
		option string
		want   *time.Time
	}{
		{milestone.ReminderOnDate, pointer.To(date(2025, time.June, 15))},
		{milestone.ReminderOneDayBefore, pointer.To(date(2025, time.June, 14))},
		{milestone.ReminderThreeDays, pointer.To(date(2025, time.June, 12))},
		{milestone.ReminderOneWeek, pointer.To(date(2025, time.June, 8))},
		{milestone.ReminderOneMonth, pointer.To(date(2025, time.May, 16))},
		{milestone.ReminderNone, nil},
		{"every_fortnight", nil}, // unknown options degrade to no reminder
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			got := milestone.ReminderDate(eventDate, tt.option)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v, got %v", tt.want, got)
		})
	}
}

/*
TestShouldTriggerReminder checks midnight-normalized day equality and the nil
short-circuit.
*/
func TestShouldTriggerReminder(t *testing.T) {
	today := time.Date(2025, time.June, 15, 9, 30, 0, 0, time.Local)

	sameDay := time.Date(2025, time.June, 15, 23, 0, 0, 0, time.Local)
	assert.True(t, milestone.ShouldTriggerReminder(&sameDay, today))

	nextDay := date(2025, time.June, 16)
	assert.False(t, milestone.ShouldTriggerReminder(&nextDay, today))

	assert.False(t, milestone.ShouldTriggerReminder(nil, today))
}

/*
TestFormatDaysUntil locks the golden display strings, including the 7 and 30
special cases that shadow the generic branch.
*/
func TestFormatDaysUntil(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "Today!"},
		{1, "Tomorrow"},
		{-1, "1 days ago"},
		{-14, "14 days ago"},
		{7, "1 week away"},
		{30, "1 month away"},
		{2, "2 days away"},
		{8, "8 days away"},
		{29, "29 days away"},
		{31, "31 days away"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, milestone.FormatDaysUntil(tt.days))
		})
	}
}

/*
TestReflectionPrompts verifies the static prompt table and its fallback.
*/
func TestReflectionPrompts(t *testing.T) {
	for _, milestoneType := range milestone.MilestoneTypes() {
		prompts := milestone.ReflectionPrompts(milestoneType)
		assert.Len(t, prompts, 5, "type %q", milestoneType)
	}

	// Unknown and empty types fall back to the "other" set, never empty
	fallback := milestone.ReflectionPrompts(milestone.TypeOther)
	assert.Equal(t, fallback, milestone.ReflectionPrompts("house_move"))
	assert.Equal(t, fallback, milestone.ReflectionPrompts(""))

	prompt := milestone.RandomReflectionPrompt("house_move")
	assert.Contains(t, fallback, prompt)
}

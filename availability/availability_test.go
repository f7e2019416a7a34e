package availability

import (
	"testing"
	"time"

	"venuehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestBookedDatesAreBlocked(t *testing.T) {
	booked := []models.BookedDate{
		{Date: "2025-06-03", BookingID: "b1"},
		{Date: "2025-06-05", BookingID: "b2"},
	}

	assert.True(t, IsDateBlocked(day(t, "2025-06-03"), booked, models.AvailabilityRules{}))
	assert.True(t, IsDateBlocked(day(t, "2025-06-05"), booked, models.AvailabilityRules{}))
	assert.False(t, IsDateBlocked(day(t, "2025-06-04"), booked, models.AvailabilityRules{}))
}

func TestBlockedWeekdayAppliesToEveryRecurrence(t *testing.T) {
	// 2025-06-02 is a Monday. The evaluator must treat every recurrence value
	// identically: any matching weekday is blocked.
	for _, rec := range []string{
		models.RecurrenceWeekly,
		models.RecurrenceBiweekly,
		models.RecurrenceMonthly,
	} {
		rules := models.AvailabilityRules{
			BlockedWeekdays: []models.BlockedWeekday{{Weekday: 1, RecurrenceRule: rec}},
		}
		for _, monday := range []string{"2025-06-02", "2025-06-09", "2025-06-16", "2025-06-23"} {
			assert.True(t, IsDateBlocked(day(t, monday), nil, rules),
				"recurrence %s should block %s", rec, monday)
		}
		assert.False(t, IsDateBlocked(day(t, "2025-06-03"), nil, rules),
			"recurrence %s must not block a Tuesday", rec)
	}
}

func TestNoRulesMeansAvailable(t *testing.T) {
	got := SelectableDates(day(t, "2025-06-02"), day(t, "2025-06-08"), nil, models.AvailabilityRules{})
	assert.Len(t, got, 7)
}

func TestSelectableDatesFiltersBookedAndBlocked(t *testing.T) {
	booked := []models.BookedDate{{Date: "2025-06-04", BookingID: "b1"}}
	rules := models.AvailabilityRules{
		BlockedWeekdays: []models.BlockedWeekday{
			{Weekday: 0, RecurrenceRule: models.RecurrenceWeekly}, // Sundays
		},
	}

	// Mon 2 .. Sun 8: drop Wed 4 (booked) and Sun 8 (weekday rule).
	got := SelectableDateStrings(day(t, "2025-06-02"), day(t, "2025-06-08"), booked, rules)
	assert.Equal(t, []string{"2025-06-02", "2025-06-03", "2025-06-05", "2025-06-06", "2025-06-07"}, got)
}

func TestSelectableDatesEmptyRange(t *testing.T) {
	got := SelectableDates(day(t, "2025-06-08"), day(t, "2025-06-02"), nil, models.AvailabilityRules{})
	assert.Empty(t, got)
}

package availability

import (
	"time"

	"venuehub/models"
	"venuehub/utils"
)

// IsDateBooked reports whether date exactly matches an entry in bookedDates.
func IsDateBooked(date time.Time, bookedDates []models.BookedDate) bool {
	day := date.Format(utils.DateLayout)
	for _, bd := range bookedDates {
		if bd.Date == day {
			return true
		}
	}
	return false
}

// IsWeekdayBlocked reports whether the date's weekday matches a blocked-weekday
// rule. The recurrenceRule value (weekly/biweekly/monthly) is stored with the
// rule but not differentiated here: every occurrence of a matching weekday is
// blocked.
func IsWeekdayBlocked(date time.Time, rules models.AvailabilityRules) bool {
	dow := int(date.Weekday())
	for _, bw := range rules.BlockedWeekdays {
		if bw.Weekday == dow {
			return true
		}
	}
	return false
}

// IsDateBlocked reports whether a candidate date is unavailable, either
// because it is already booked or because its weekday is blocked. Absence of
// rules means the date is available.
func IsDateBlocked(date time.Time, bookedDates []models.BookedDate, rules models.AvailabilityRules) bool {
	return IsDateBooked(date, bookedDates) || IsWeekdayBlocked(date, rules)
}

// SelectableDates walks [from, to] inclusive and returns every date that is
// bookable under the given booked dates and rules. from after to yields nil.
func SelectableDates(from, to time.Time, bookedDates []models.BookedDate, rules models.AvailabilityRules) []time.Time {
	var out []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !IsDateBlocked(d, bookedDates, rules) {
			out = append(out, d)
		}
	}
	return out
}

// SelectableDateStrings is SelectableDates formatted as YYYY-MM-DD, which is
// what the HTTP layer serves.
func SelectableDateStrings(from, to time.Time, bookedDates []models.BookedDate, rules models.AvailabilityRules) []string {
	dates := SelectableDates(from, to, bookedDates, rules)
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(utils.DateLayout))
	}
	return out
}

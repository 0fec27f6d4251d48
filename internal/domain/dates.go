package domain

import "time"

// CalendarDate strips the time-of-day (and sub-second) component so two
// timestamps on the same calendar day compare equal. Every date-equality
// check in the program, resolver and log code must go through this one
// helper; ad hoc truncation at call sites is how duplicate days sneak in.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameCalendarDay reports whether a and b fall on the same calendar date.
func SameCalendarDay(a, b time.Time) bool {
	return CalendarDate(a).Equal(CalendarDate(b))
}

// DayOfWeekLabel returns the label stored alongside a workout day
// ("Monday", "Tuesday", ...). Recomputed whenever a day's date changes.
func DayOfWeekLabel(t time.Time) string {
	return CalendarDate(t).Weekday().String()
}

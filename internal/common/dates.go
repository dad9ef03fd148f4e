package common

import "time"

// Date-window math is timezone-naive calendar-date arithmetic performed in
// UTC. Calendar months vary in length, so windows anchor on the truncated
// current date and step with AddDate rather than fixed durations.

// DateOnly truncates a time to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthsBack returns the inclusive window ending on now's date and starting
// the given number of calendar months earlier.
func MonthsBack(now time.Time, months int) (time.Time, time.Time) {
	end := DateOnly(now)
	return end.AddDate(0, -months, 0), end
}

// DaysBack returns the inclusive window ending on now's date and starting
// the given number of days earlier.
func DaysBack(now time.Time, days int) (time.Time, time.Time) {
	end := DateOnly(now)
	return end.AddDate(0, 0, -days), end
}

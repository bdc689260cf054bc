// utils/dates.go
package utils

import "time"

// Clock returns the current time. Handlers take one so tests can pin "today".
type Clock func() time.Time

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

package schema

import "time"

// DayDuration is the span of one daily interval, from 00:00:00 to
// 23:59:59 inclusive.
const DayDuration = 24*time.Hour - time.Second

// FloorToDay returns t converted to UTC and truncated to midnight.
func FloorToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayEnd returns the last second of the day that starts at dayStart.
func DayEnd(dayStart time.Time) time.Time {
	return dayStart.Add(DayDuration)
}

// DayRange returns every calendar day from first through last inclusive,
// both floored to midnight UTC. It returns nil if last precedes first.
func DayRange(first, last time.Time) []time.Time {
	start := FloorToDay(first)
	end := FloorToDay(last)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// FormatDay renders a day as YYYY-MM-DD for display output.
func FormatDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

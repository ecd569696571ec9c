package quota

import "time"

// Day is a UTC calendar date in ISO format (YYYY-MM-DD). Using the date as
// part of the counter key is what makes quotas roll over without a reset job.
type Day string

// DayOf truncates a timestamp to its UTC calendar date.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format("2006-01-02"))
}

// Today returns the current UTC calendar date.
func Today() Day {
	return DayOf(time.Now())
}

// Decision is the outcome of a quota admission check.
type Decision struct {
	Allowed   bool
	Limit     int64
	Used      int64 // counter value after the operation
	Remaining int64 // zero when denied
}

// PercentUsed returns used/limit as a whole percentage, capped at 100.
// Computed on demand for UI and threshold notifications.
func (d Decision) PercentUsed() int {
	if d.Limit <= 0 {
		return 100
	}
	return min(int((d.Used*100)/d.Limit), 100)
}

// Usage is a single user's counter for a day, as returned by the sweep query.
type Usage struct {
	UserID string
	Count  int64
}

// Package period computes civil dates and calendar windows in the bot's
// configured timezone. All aggregation windows are closed date ranges.
package period

import "time"

// DateLayout is the civil-date format used everywhere in the ledger.
const DateLayout = "2006-01-02"

// CivilDate returns the calendar date of now in loc, formatted YYYY-MM-DD.
func CivilDate(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(DateLayout)
}

// Week is a closed Monday–Sunday range. Start and End are midnights in the
// configured location.
type Week struct {
	Start time.Time
	End   time.Time
}

// PreviousWeek returns the Monday–Sunday week before the week containing now.
// The result is the same for every weekday of the current week.
func PreviousWeek(now time.Time, loc *time.Location) Week {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	daysSinceMonday := (int(today.Weekday()) + 6) % 7
	start := today.AddDate(0, 0, -(daysSinceMonday + 7))
	return Week{
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}
}

// Contains reports whether day falls inside the week, bounds included.
func (w Week) Contains(day time.Time) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

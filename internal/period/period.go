// Package period implements the business-week calendar used by quota and
// commission aggregation. A business week runs Wednesday 00:00:00 through
// Tuesday 23:59:59.999999999, and week N of a month is the week ending on
// that month's Nth Tuesday. A week that begins in the prior month therefore
// counts as week 1 of the month holding its Tuesday.
package period

import "time"

// Week is one business-week interval. Start and End are inclusive bounds.
type Week struct {
	Index int       `json:"index"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the week.
func (w Week) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Degenerate reports whether the week is the same-instant fallback interval
// returned for an out-of-range index.
func (w Week) Degenerate() bool {
	return !w.Start.Before(w.End)
}

// WeekOf returns week index (1-based) of the given month. When index exceeds
// the number of Tuesdays in the month the result is a degenerate same-instant
// interval anchored at the first of the month; callers must not assume a
// valid range.
func WeekOf(year int, month time.Month, index int, loc *time.Location) Week {
	if loc == nil {
		loc = time.UTC
	}
	tuesdays := tuesdaysIn(year, month, loc)
	if index < 1 || index > len(tuesdays) {
		first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		return Week{Index: index, Start: first, End: first}
	}
	return weekEndingOn(tuesdays[index-1], index)
}

// WeeksIn returns every business week of the month, ordered by start date.
// The result is contiguous and non-overlapping, each span exactly 7 days.
func WeeksIn(year int, month time.Month, loc *time.Location) []Week {
	if loc == nil {
		loc = time.UTC
	}
	tuesdays := tuesdaysIn(year, month, loc)
	weeks := make([]Week, 0, len(tuesdays))
	for i, tue := range tuesdays {
		weeks = append(weeks, weekEndingOn(tue, i+1))
	}
	return weeks
}

// Current locates the business week containing now and returns the month it
// belongs to along with its index within that month.
func Current(now time.Time) (year int, month time.Month, index int) {
	anchor := nextTuesdayOnOrAfter(now)
	year = anchor.Year()
	month = anchor.Month()
	index = (anchor.Day()-1)/7 + 1
	return year, month, index
}

// CurrentWeek is a convenience wrapper around Current and WeekOf.
func CurrentWeek(now time.Time) Week {
	year, month, index := Current(now)
	return WeekOf(year, month, index, now.Location())
}

func weekEndingOn(tuesday time.Time, index int) Week {
	start := tuesday.AddDate(0, 0, -6)
	return Week{
		Index: index,
		Start: start,
		End:   start.AddDate(0, 0, 7).Add(-time.Nanosecond),
	}
}

func tuesdaysIn(year int, month time.Month, loc *time.Location) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(time.Tuesday) - int(first.Weekday()) + 7) % 7

	var tuesdays []time.Time
	for d := first.AddDate(0, 0, offset); d.Month() == month; d = d.AddDate(0, 0, 7) {
		tuesdays = append(tuesdays, d)
	}
	return tuesdays
}

func nextTuesdayOnOrAfter(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(time.Tuesday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

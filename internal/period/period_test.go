package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeksIn_ContiguousNonOverlapping(t *testing.T) {
	for year := 2024; year <= 2027; year++ {
		for month := time.January; month <= time.December; month++ {
			weeks := WeeksIn(year, month, time.UTC)
			require.NotEmpty(t, weeks)
			assert.LessOrEqual(t, len(weeks), 5)

			for i, wk := range weeks {
				assert.Equal(t, i+1, wk.Index)
				assert.Equal(t, time.Wednesday, wk.Start.Weekday())
				assert.Equal(t, time.Tuesday, wk.End.Weekday())

				// Exactly seven days, last instant 23:59:59.999999999.
				span := wk.End.Sub(wk.Start) + time.Nanosecond
				assert.Equal(t, 7*24*time.Hour, span)

				if i > 0 {
					assert.Equal(t, weeks[i-1].End.Add(time.Nanosecond), wk.Start,
						"weeks must be contiguous for %d-%s", year, month)
				}
			}
		}
	}
}

func TestWeekOf_AnchoredOnNthTuesday(t *testing.T) {
	// August 2026: Tuesdays fall on the 4th, 11th, 18th and 25th.
	wk := WeekOf(2026, time.August, 1, time.UTC)
	assert.Equal(t, time.Date(2026, time.July, 29, 0, 0, 0, 0, time.UTC), wk.Start)
	assert.Equal(t, time.Date(2026, time.August, 4, 23, 59, 59, 999999999, time.UTC), wk.End)
	assert.False(t, wk.Degenerate())

	wk = WeekOf(2026, time.August, 4, time.UTC)
	assert.Equal(t, time.Date(2026, time.August, 19, 0, 0, 0, 0, time.UTC), wk.Start)
	assert.Equal(t, time.Date(2026, time.August, 25, 23, 59, 59, 999999999, time.UTC), wk.End)
}

func TestWeekOf_OutOfRangeIndexIsDegenerate(t *testing.T) {
	wk := WeekOf(2026, time.August, 5, time.UTC)
	assert.True(t, wk.Degenerate())
	assert.Equal(t, wk.Start, wk.End)

	wk = WeekOf(2026, time.August, 0, time.UTC)
	assert.True(t, wk.Degenerate())
}

func TestCurrent_LocatesContainingWeek(t *testing.T) {
	// Saturday 2026-08-29 belongs to the week ending Tuesday 2026-09-01,
	// which is week 1 of September.
	now := time.Date(2026, time.August, 29, 15, 30, 0, 0, time.UTC)
	year, month, index := Current(now)
	assert.Equal(t, 2026, year)
	assert.Equal(t, time.September, month)
	assert.Equal(t, 1, index)

	wk := WeekOf(year, month, index, time.UTC)
	assert.True(t, wk.Contains(now))

	// A Tuesday belongs to the week it ends.
	tue := time.Date(2026, time.August, 11, 23, 0, 0, 0, time.UTC)
	year, month, index = Current(tue)
	assert.Equal(t, time.August, month)
	assert.Equal(t, 2, index)
	assert.True(t, WeekOf(year, month, index, time.UTC).Contains(tue))
}

func TestWeekContains_Bounds(t *testing.T) {
	wk := WeekOf(2026, time.August, 2, time.UTC)
	assert.True(t, wk.Contains(wk.Start))
	assert.True(t, wk.Contains(wk.End))
	assert.False(t, wk.Contains(wk.Start.Add(-time.Nanosecond)))
	assert.False(t, wk.Contains(wk.End.Add(time.Nanosecond)))
}

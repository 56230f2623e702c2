package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlapsWindow(t *testing.T) {
	weekStart := time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2026, time.August, 11, 23, 59, 59, 0, time.UTC)

	at := func(day int) time.Time {
		return time.Date(2026, time.August, day, 12, 0, 0, 0, time.UTC)
	}
	ptr := func(t time.Time) *time.Time { return &t }

	cases := []struct {
		name     string
		joined   time.Time
		left     *time.Time
		overlaps bool
	}{
		{"open membership from before", at(1), nil, true},
		{"joined mid-week", at(7), nil, true},
		{"joined after week", at(15), nil, false},
		{"left before week", at(1), ptr(at(3)), false},
		{"left mid-week", at(1), ptr(at(8)), true},
		{"left exactly at week start", at(1), ptr(weekStart), false},
		{"whole interval inside week", at(6), ptr(at(9)), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := GroupMember{JoinedAt: tc.joined, LeftAt: tc.left}
			assert.Equal(t, tc.overlaps, m.OverlapsWindow(weekStart, weekEnd))
		})
	}
}

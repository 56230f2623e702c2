package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// WorkingHours stores a salesperson's declared availability. Two formats are
// supported: the legacy fixed morning/afternoon blocks and the newer
// per-weekday custom ranges. The raw document is kept as JSON so legacy rows
// survive without migration.
type WorkingHours struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	MemberID  snowflake.ID   `gorm:"not null;uniqueIndex" json:"member_id"`
	Config    datatypes.JSON `gorm:"type:jsonb;not null" json:"config"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (WorkingHours) TableName() string { return "working_hours" }

// BlockedEvent is an organization-wide interval during which no meetings may
// be scheduled.
type BlockedEvent struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Title     string       `gorm:"not null" json:"title"`
	StartsAt  time.Time    `gorm:"not null;index" json:"starts_at"`
	EndsAt    time.Time    `gorm:"not null" json:"ends_at"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (BlockedEvent) TableName() string { return "blocked_events" }

// Overlaps reports whether the event intersects [start, end).
func (e BlockedEvent) Overlaps(start, end time.Time) bool {
	return e.StartsAt.Before(end) && e.EndsAt.After(start)
}

// TimeRange is a clock interval within one day, "HH:MM" inclusive-exclusive.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Schedule is the parsed working-hours document.
//
// Legacy format:
//
//	{"morning_start":"08:00","morning_end":"12:00","afternoon_start":"13:00","afternoon_end":"18:00"}
//
// Custom format:
//
//	{"days":{"monday":[{"start":"09:00","end":"18:00"}],"saturday":[]}}
type Schedule struct {
	MorningStart   string                 `json:"morning_start,omitempty"`
	MorningEnd     string                 `json:"morning_end,omitempty"`
	AfternoonStart string                 `json:"afternoon_start,omitempty"`
	AfternoonEnd   string                 `json:"afternoon_end,omitempty"`
	Days           map[string][]TimeRange `json:"days,omitempty"`
}

// ParseSchedule decodes a stored working-hours document.
func ParseSchedule(raw datatypes.JSON) (Schedule, error) {
	var sched Schedule
	if len(raw) == 0 {
		return sched, nil
	}
	if err := json.Unmarshal(raw, &sched); err != nil {
		return Schedule{}, fmt.Errorf("parse working hours: %w", err)
	}
	return sched, nil
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// RangesFor returns the declared ranges for a weekday. The custom per-day
// format takes precedence; a weekday explicitly present with no ranges means
// the day is off. The legacy format applies Monday through Saturday.
func (s Schedule) RangesFor(day time.Weekday) []TimeRange {
	if s.Days != nil {
		return s.Days[weekdayNames[day]]
	}

	if day == time.Sunday {
		return nil
	}
	var ranges []TimeRange
	if s.MorningStart != "" && s.MorningEnd != "" {
		ranges = append(ranges, TimeRange{Start: s.MorningStart, End: s.MorningEnd})
	}
	if s.AfternoonStart != "" && s.AfternoonEnd != "" {
		ranges = append(ranges, TimeRange{Start: s.AfternoonStart, End: s.AfternoonEnd})
	}
	return ranges
}

// Covers reports whether [start, end) falls inside one declared range of the
// day. Ranges never cross midnight, so neither can a covered slot.
func (s Schedule) Covers(start, end time.Time) bool {
	dayEnd := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()).AddDate(0, 0, 1)
	if end.After(dayEnd) {
		return false
	}
	for _, r := range s.RangesFor(start.Weekday()) {
		rangeStart, okStart := atClock(start, r.Start)
		rangeEnd, okEnd := atClock(start, r.End)
		if !okStart || !okEnd {
			continue
		}
		if !start.Before(rangeStart) && !end.After(rangeEnd) {
			return true
		}
	}
	return false
}

func atClock(day time.Time, clock string) (time.Time, bool) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return time.Time{}, false
	}
	var hour, minute int
	if _, err := fmt.Sscanf(parts[0]+" "+parts[1], "%d %d", &hour, &minute); err != nil {
		return time.Time{}, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), true
}

package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Rule names, in the order they are checked.
const (
	RuleWorkingHours       = "working_hours"
	RuleBlockedEvent       = "blocked_event"
	RuleAppointmentOverlap = "appointment_overlap"
)

// Violation is the first scheduling rule a proposed slot breaks.
type Violation struct {
	Rule   string `json:"rule"`
	Reason string `json:"reason"`
}

// Checker validates a proposed meeting slot. A nil Violation with a nil
// error means the slot is free. Checks run in a fixed order: working hours,
// blocked events, existing appointments.
type Checker interface {
	Check(ctx context.Context, sellerID snowflake.ID, start, end time.Time) (*Violation, error)
}

type Repository interface {
	FindWorkingHours(ctx context.Context, db *gorm.DB, memberID snowflake.ID) (*WorkingHours, error)
	ListBlockedEventsOverlapping(ctx context.Context, db *gorm.DB, start, end time.Time) ([]*BlockedEvent, error)
}

var (
	ErrInvalidInterval = errors.New("invalid_interval")
)

package domain

import (
	"context"
	"errors"
	"time"
)

type ScheduleRequest struct {
	SDRID        string     `json:"sdr_id"`
	SellerID     string     `json:"seller_id"`
	LeadID       string     `json:"lead_id"`
	ScheduledAt  time.Time  `json:"scheduled_at"`
	ScheduledEnd *time.Time `json:"scheduled_end,omitempty"`
}

type FinalizeRequest struct {
	Result Result `json:"result"`
}

type Service interface {
	// Schedule validates the proposed slot against the seller's availability
	// before persisting. A *ConflictError is returned when a rule is violated.
	Schedule(ctx context.Context, req ScheduleRequest) (Appointment, error)
	Finalize(ctx context.Context, id string, req FinalizeRequest) (Appointment, error)
}

// ConflictError carries the first violated scheduling rule.
type ConflictError struct {
	Rule   string `json:"rule"`
	Reason string `json:"reason"`
}

func (e *ConflictError) Error() string {
	return e.Reason
}

var (
	ErrInvalidID        = errors.New("invalid_appointment_id")
	ErrInvalidSchedule  = errors.New("invalid_schedule")
	ErrInvalidResult    = errors.New("invalid_result")
	ErrNotFound         = errors.New("appointment_not_found")
	ErrAlreadyFinalized = errors.New("appointment_already_finalized")
)

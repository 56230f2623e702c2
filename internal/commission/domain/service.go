package domain

import (
	"context"
	"errors"
	"time"
)

type MemberAttainmentRequest struct {
	MemberID string
	Year     int
	Month    time.Month
	Week     int
}

type SupervisorCommissionRequest struct {
	SupervisorID string
	Year         int
	Month        time.Month
	Week         int
}

type MonthlyCommissionRequest struct {
	SupervisorID string
	Year         int
	Month        time.Month
}

type Service interface {
	// MemberAttainment computes one member's weekly attainment. Fetch
	// failures degrade to a zeroed result instead of propagating.
	MemberAttainment(ctx context.Context, req MemberAttainmentRequest) (Attainment, error)
	// SupervisorCommission aggregates one week for the supervisor's group.
	SupervisorCommission(ctx context.Context, req SupervisorCommissionRequest) (GroupResult, error)
	// MonthlyCommission computes every week of the month with batched
	// fetches and parallel per-week computation. Results are equivalent to
	// calling SupervisorCommission once per week.
	MonthlyCommission(ctx context.Context, req MonthlyCommissionRequest) ([]GroupResult, error)
}

var (
	ErrInvalidID          = errors.New("invalid_member_id")
	ErrInvalidPeriod      = errors.New("invalid_period")
	ErrMemberNotFound     = errors.New("member_not_found")
	ErrSupervisorNotFound = errors.New("supervisor_not_found")
	ErrGroupNotFound      = errors.New("group_not_found")
)

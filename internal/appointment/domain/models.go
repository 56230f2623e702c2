package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Result is the terminal outcome of a meeting. Empty until the meeting is
// finalized. The string values are shared with the dashboard clients.
type Result string

const (
	ResultComprou              Result = "comprou"
	ResultCompareceuNaoComprou Result = "compareceu_nao_comprou"
	ResultNaoCompareceu        Result = "nao_compareceu"
)

// Realized reports whether the result counts as one realized unit toward the
// owning SDR's weekly quota. No-shows and pending meetings never count.
func (r Result) Realized() bool {
	return r == ResultComprou || r == ResultCompareceuNaoComprou
}

func (r Result) Valid() bool {
	switch r {
	case ResultComprou, ResultCompareceuNaoComprou, ResultNaoCompareceu:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusAgendado   Status = "agendado"
	StatusFinalizado Status = "finalizado"
	StatusCancelado  Status = "cancelado"
)

type Appointment struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	SDRID        snowflake.ID  `gorm:"column:sdr_id;not null;index:idx_appointments_sdr_scheduled" json:"sdr_id"`
	SellerID     *snowflake.ID `gorm:"column:seller_id;index" json:"seller_id,omitempty"`
	LeadID       snowflake.ID  `gorm:"not null;index" json:"lead_id"`
	ScheduledAt  time.Time     `gorm:"not null;index:idx_appointments_sdr_scheduled" json:"scheduled_at"`
	ScheduledEnd *time.Time    `json:"scheduled_end,omitempty"`
	Result       Result        `gorm:"not null;default:''" json:"result,omitempty"`
	ResultAt     *time.Time    `json:"result_at,omitempty"`
	Status       Status        `gorm:"not null;default:'agendado'" json:"status"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Appointment) TableName() string { return "appointments" }

// DefaultDuration is assumed when an appointment has no explicit end.
const DefaultDuration = time.Hour

// End returns the effective end instant of the appointment.
func (a Appointment) End() time.Time {
	if a.ScheduledEnd != nil {
		return *a.ScheduledEnd
	}
	return a.ScheduledAt.Add(DefaultDuration)
}

// Overlaps reports whether the appointment intersects [start, end).
func (a Appointment) Overlaps(start, end time.Time) bool {
	return a.ScheduledAt.Before(end) && a.End().After(start)
}

package domain

import (
	"github.com/bwmarrin/snowflake"
	memberdomain "github.com/vendahub/salesops/internal/member/domain"
	"github.com/vendahub/salesops/internal/period"
)

// Attainment is one member's weekly performance against quota. Percent is
// stored uncapped; dashboards that clamp progress bars ask for the capped
// view explicitly.
type Attainment struct {
	MemberID snowflake.ID       `json:"member_id"`
	Name     string             `json:"name"`
	Role     memberdomain.Role  `json:"role"`
	Level    memberdomain.Level `json:"level"`
	Realized float64            `json:"realized"`
	Quota    int                `json:"quota"`
	Percent  float64            `json:"percent"`
}

// DisplayPercent returns the percentage, clamped to 100 when capped. The
// commission calculation always consumes the uncapped value.
func (a Attainment) DisplayPercent(capped bool) float64 {
	if capped && a.Percent > 100 {
		return 100
	}
	return a.Percent
}

// GroupResult is a supervisor's weekly commission: the unweighted average of
// member attainment mapped through the tier table onto the supervisor's
// level base.
type GroupResult struct {
	SupervisorID   snowflake.ID `json:"supervisor_id"`
	Week           period.Week  `json:"week"`
	Members        []Attainment `json:"members"`
	AveragePercent float64      `json:"average_percent"`
	Multiplier     float64      `json:"multiplier"`
	BaseCents      int64        `json:"base_cents"`
	AmountCents    int64        `json:"amount_cents"`
}

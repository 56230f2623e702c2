package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	apptdomain "github.com/vendahub/salesops/internal/appointment/domain"
	memberdomain "github.com/vendahub/salesops/internal/member/domain"
	"github.com/vendahub/salesops/internal/period"
	quotadomain "github.com/vendahub/salesops/internal/quota/domain"
	saledomain "github.com/vendahub/salesops/internal/sale/domain"
	"gorm.io/gorm"
)

// Calculator computes realized units and quota for one role family. One
// implementation exists per activity type; the role tag selects it, which
// keeps the SDR/seller branching in a single place.
type Calculator interface {
	RealizedUnits(ctx context.Context, memberID snowflake.ID, wk period.Week) (float64, error)
	Quota(level memberdomain.Level) int
}

type sdrCalculator struct {
	db    *gorm.DB
	repo  apptdomain.Repository
	role  memberdomain.Role
	table quotadomain.Table
}

func (c sdrCalculator) RealizedUnits(ctx context.Context, memberID snowflake.ID, wk period.Week) (float64, error) {
	appts, err := c.repo.ListBySDRs(ctx, c.db, []snowflake.ID{memberID}, wk.Start, wk.End)
	if err != nil {
		return 0, err
	}
	return realizedFromAppointments(appts, memberID, wk), nil
}

func (c sdrCalculator) Quota(level memberdomain.Level) int {
	return c.table.Lookup(c.role, level)
}

type sellerCalculator struct {
	db    *gorm.DB
	repo  saledomain.Repository
	table quotadomain.Table
}

func (c sellerCalculator) RealizedUnits(ctx context.Context, memberID snowflake.ID, wk period.Week) (float64, error) {
	sales, err := c.repo.ListEnrolledBySellers(ctx, c.db, []snowflake.ID{memberID}, wk.End)
	if err != nil {
		return 0, err
	}
	return realizedFromSales(sales, memberID, wk), nil
}

func (c sellerCalculator) Quota(level memberdomain.Level) int {
	return c.table.Lookup(memberdomain.RoleVendedor, level)
}

// realizedFromAppointments counts finalized meetings with a realized result
// scheduled inside the week. Shared by the single and batched paths so both
// agree by construction.
func realizedFromAppointments(appts []*apptdomain.Appointment, memberID snowflake.ID, wk period.Week) float64 {
	var count float64
	for _, appt := range appts {
		if appt == nil || appt.SDRID != memberID {
			continue
		}
		if !appt.Result.Realized() {
			continue
		}
		if !wk.Contains(appt.ScheduledAt) {
			continue
		}
		count++
	}
	return count
}

// realizedFromSales sums points of matriculado sales whose effective date
// falls inside the week.
func realizedFromSales(sales []*saledomain.Sale, memberID snowflake.ID, wk period.Week) float64 {
	var total float64
	for _, s := range sales {
		if s == nil || s.SellerID != memberID {
			continue
		}
		if s.Status != saledomain.StatusMatriculado {
			continue
		}
		if !wk.Contains(saledomain.EffectiveDate(*s)) {
			continue
		}
		total += saledomain.Points(*s)
	}
	return total
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/vendahub/salesops/internal/appointment/domain"
	apptrepo "github.com/vendahub/salesops/internal/appointment/repository"
	availdomain "github.com/vendahub/salesops/internal/availability/domain"
	"github.com/vendahub/salesops/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeChecker struct {
	violation *availdomain.Violation
	checkedID snowflake.ID
}

func (f *fakeChecker) Check(ctx context.Context, sellerID snowflake.ID, start, end time.Time) (*availdomain.Violation, error) {
	f.checkedID = sellerID
	return f.violation, nil
}

func newTestService(t *testing.T, checker availdomain.Checker) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Appointment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, time.August, 3, 8, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:      conn,
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   fake,
		Repo:    apptrepo.Provide(),
		Checker: checker,
	})
	return svc, conn, fake
}

func TestSchedule_ChecksSellerCalendarWhenPresent(t *testing.T) {
	checker := &fakeChecker{}
	svc, _, _ := newTestService(t, checker)

	appt, err := svc.Schedule(context.Background(), domain.ScheduleRequest{
		SDRID:       "10",
		SellerID:    "20",
		LeadID:      "30",
		ScheduledAt: time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, snowflake.ID(20), checker.checkedID)
	assert.Equal(t, domain.StatusAgendado, appt.Status)
	require.NotNil(t, appt.SellerID)
	assert.Equal(t, snowflake.ID(20), *appt.SellerID)
}

func TestSchedule_SDROnlyChecksOwnCalendar(t *testing.T) {
	checker := &fakeChecker{}
	svc, _, _ := newTestService(t, checker)

	_, err := svc.Schedule(context.Background(), domain.ScheduleRequest{
		SDRID:       "10",
		LeadID:      "30",
		ScheduledAt: time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(10), checker.checkedID)
}

func TestSchedule_ConflictSurfacesRule(t *testing.T) {
	checker := &fakeChecker{violation: &availdomain.Violation{
		Rule:   availdomain.RuleWorkingHours,
		Reason: "horário fora do expediente do vendedor",
	}}
	svc, _, _ := newTestService(t, checker)

	_, err := svc.Schedule(context.Background(), domain.ScheduleRequest{
		SDRID:       "10",
		SellerID:    "20",
		LeadID:      "30",
		ScheduledAt: time.Date(2026, time.August, 3, 6, 0, 0, 0, time.UTC),
	})

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, availdomain.RuleWorkingHours, conflict.Rule)
}

func TestSchedule_RejectsInvertedInterval(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeChecker{})

	start := time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err := svc.Schedule(context.Background(), domain.ScheduleRequest{
		SDRID:        "10",
		LeadID:       "30",
		ScheduledAt:  start,
		ScheduledEnd: &end,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
}

func TestFinalize_SetsResultOnce(t *testing.T) {
	svc, _, fake := newTestService(t, &fakeChecker{})

	appt, err := svc.Schedule(context.Background(), domain.ScheduleRequest{
		SDRID:       "10",
		LeadID:      "30",
		ScheduledAt: time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	fake.Advance(2 * time.Hour)
	finalized, err := svc.Finalize(context.Background(), appt.ID.String(), domain.FinalizeRequest{
		Result: domain.ResultComprou,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultComprou, finalized.Result)
	assert.Equal(t, domain.StatusFinalizado, finalized.Status)
	require.NotNil(t, finalized.ResultAt)

	// A second outcome for the same meeting is refused.
	_, err = svc.Finalize(context.Background(), appt.ID.String(), domain.FinalizeRequest{
		Result: domain.ResultNaoCompareceu,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}

func TestFinalize_InvalidResult(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeChecker{})

	_, err := svc.Finalize(context.Background(), "42", domain.FinalizeRequest{Result: "talvez"})
	assert.ErrorIs(t, err, domain.ErrInvalidResult)
}

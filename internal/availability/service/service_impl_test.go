package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	apptdomain "github.com/vendahub/salesops/internal/appointment/domain"
	apptrepo "github.com/vendahub/salesops/internal/appointment/repository"
	"github.com/vendahub/salesops/internal/availability/domain"
	availrepo "github.com/vendahub/salesops/internal/availability/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func legacySchedule() domain.Schedule {
	return domain.Schedule{
		MorningStart:   "08:00",
		MorningEnd:     "12:00",
		AfternoonStart: "13:00",
		AfternoonEnd:   "18:00",
	}
}

// Monday 2026-08-03.
func slot(hour, minute, durMinutes int) (time.Time, time.Time) {
	start := time.Date(2026, time.August, 3, hour, minute, 0, 0, time.UTC)
	return start, start.Add(time.Duration(durMinutes) * time.Minute)
}

func TestEvaluate_InsideWorkingHours(t *testing.T) {
	start, end := slot(9, 0, 60)
	v := Evaluate(legacySchedule(), true, nil, nil, start, end)
	assert.Nil(t, v)
}

func TestEvaluate_OutsideWorkingHours(t *testing.T) {
	cases := []struct {
		name   string
		hour   int
		minute int
		dur    int
	}{
		{"before opening", 7, 0, 60},
		{"lunch gap", 12, 15, 30},
		{"spills past closing", 17, 30, 60},
		{"spans the lunch gap", 11, 30, 120},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := slot(tc.hour, tc.minute, tc.dur)
			v := Evaluate(legacySchedule(), true, nil, nil, start, end)
			require.NotNil(t, v)
			assert.Equal(t, domain.RuleWorkingHours, v.Rule)
			assert.Equal(t, "horário fora do expediente do vendedor", v.Reason)
		})
	}
}

func TestEvaluate_LegacyScheduleExcludesSunday(t *testing.T) {
	start := time.Date(2026, time.August, 2, 9, 0, 0, 0, time.UTC)
	v := Evaluate(legacySchedule(), true, nil, nil, start, start.Add(time.Hour))
	require.NotNil(t, v)
	assert.Equal(t, domain.RuleWorkingHours, v.Rule)
}

func TestEvaluate_CustomDaysOffDay(t *testing.T) {
	sched := domain.Schedule{
		Days: map[string][]domain.TimeRange{
			"monday":  {{Start: "09:00", End: "18:00"}},
			"tuesday": {},
		},
	}

	start, end := slot(10, 0, 60)
	assert.Nil(t, Evaluate(sched, true, nil, nil, start, end))

	// Tuesday is explicitly present with no ranges, so the day is off.
	tueStart := start.AddDate(0, 0, 1)
	v := Evaluate(sched, true, nil, nil, tueStart, tueStart.Add(time.Hour))
	require.NotNil(t, v)
	assert.Equal(t, domain.RuleWorkingHours, v.Rule)
}

func TestEvaluate_NoDeclaredHoursSkipsRule(t *testing.T) {
	start, end := slot(3, 0, 60)
	assert.Nil(t, Evaluate(domain.Schedule{}, false, nil, nil, start, end))
}

func TestEvaluate_BlockedEvent(t *testing.T) {
	start, end := slot(9, 0, 60)
	blocked := []*domain.BlockedEvent{{
		Title:    "Reunião geral",
		StartsAt: start.Add(-30 * time.Minute),
		EndsAt:   start.Add(30 * time.Minute),
	}}

	v := Evaluate(legacySchedule(), true, blocked, nil, start, end)
	require.NotNil(t, v)
	assert.Equal(t, domain.RuleBlockedEvent, v.Rule)
	assert.Equal(t, "conflito com evento bloqueado: Reunião geral", v.Reason)
}

func TestEvaluate_AppointmentOverlap(t *testing.T) {
	start, end := slot(9, 0, 60)
	existing := []*apptdomain.Appointment{{
		ID:          snowflake.ID(1),
		SDRID:       snowflake.ID(2),
		ScheduledAt: start.Add(30 * time.Minute),
	}}

	v := Evaluate(legacySchedule(), true, nil, existing, start, end)
	require.NotNil(t, v)
	assert.Equal(t, domain.RuleAppointmentOverlap, v.Rule)
	assert.Equal(t, "conflito com agendamento existente do vendedor", v.Reason)
}

func TestEvaluate_BackToBackSlotsDoNotOverlap(t *testing.T) {
	start, end := slot(9, 0, 60)
	existing := []*apptdomain.Appointment{{
		ID:          snowflake.ID(1),
		SDRID:       snowflake.ID(2),
		ScheduledAt: end,
	}}

	assert.Nil(t, Evaluate(legacySchedule(), true, nil, existing, start, end))
}

// Rule order is fixed: working hours beats blocked events beats overlaps.
func TestEvaluate_RuleOrder(t *testing.T) {
	start, end := slot(6, 0, 60)
	blocked := []*domain.BlockedEvent{{
		Title:    "Feriado",
		StartsAt: start.Add(-time.Hour),
		EndsAt:   end.Add(time.Hour),
	}}
	existing := []*apptdomain.Appointment{{
		ID:          snowflake.ID(1),
		SDRID:       snowflake.ID(2),
		ScheduledAt: start,
	}}

	v := Evaluate(legacySchedule(), true, blocked, existing, start, end)
	require.NotNil(t, v)
	assert.Equal(t, domain.RuleWorkingHours, v.Rule)

	// Inside working hours the blocked event is reported before the overlap.
	// The blocked event is rebuilt around the new slot so both rules trip.
	start, end = slot(9, 0, 60)
	blocked[0].StartsAt = start.Add(-time.Hour)
	blocked[0].EndsAt = end.Add(time.Hour)
	existing[0].ScheduledAt = start
	v = Evaluate(legacySchedule(), true, blocked, existing, start, end)
	require.NotNil(t, v)
	assert.Equal(t, domain.RuleBlockedEvent, v.Rule)
}

func TestEvaluate_SlotCrossingMidnightIsOutsideHours(t *testing.T) {
	sched := domain.Schedule{
		Days: map[string][]domain.TimeRange{
			"monday":  {{Start: "00:00", End: "23:59"}},
			"tuesday": {{Start: "00:00", End: "23:59"}},
		},
	}

	// 23:30 Monday through 00:30 Tuesday: both days are fully declared, but
	// no single day's ranges can contain a slot that crosses midnight.
	start := time.Date(2026, time.August, 3, 23, 30, 0, 0, time.UTC)
	v := Evaluate(sched, true, nil, nil, start, start.Add(time.Hour))
	require.NotNil(t, v)
	assert.Equal(t, domain.RuleWorkingHours, v.Rule)
}

func TestCheck_FindsLongAppointmentFromPreviousDay(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&domain.WorkingHours{},
		&domain.BlockedEvent{},
		&apptdomain.Appointment{},
	))

	svc := New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		Repo:     availrepo.Provide(),
		ApptRepo: apptrepo.Provide(),
	})

	// An all-nighter starting Sunday evening with an explicit end reaching
	// into Monday morning. Only the widened fetch window sees it.
	sellerID := snowflake.ID(20)
	endsMonday := time.Date(2026, time.August, 3, 9, 30, 0, 0, time.UTC)
	require.NoError(t, conn.Create(&apptdomain.Appointment{
		ID:           snowflake.ID(1),
		SDRID:        snowflake.ID(10),
		SellerID:     &sellerID,
		LeadID:       snowflake.ID(30),
		ScheduledAt:  time.Date(2026, time.August, 2, 20, 0, 0, 0, time.UTC),
		ScheduledEnd: &endsMonday,
		Status:       apptdomain.StatusAgendado,
	}).Error)

	start := time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC)
	v, err := svc.Check(context.Background(), sellerID, start, start.Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, domain.RuleAppointmentOverlap, v.Rule)
}

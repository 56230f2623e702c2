package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	apptdomain "github.com/vendahub/salesops/internal/appointment/domain"
	"github.com/vendahub/salesops/internal/availability/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Repo     domain.Repository
	ApptRepo apptdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	apptRepo apptdomain.Repository
}

func New(p Params) domain.Checker {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("availability.service"),
		repo:     p.Repo,
		apptRepo: p.ApptRepo,
	}
}

// Check validates a proposed [start, end) slot for the seller. Rules run in a
// fixed order and the first violation wins: working hours, then blocked
// events, then existing appointments.
func (s *Service) Check(ctx context.Context, sellerID snowflake.ID, start, end time.Time) (*domain.Violation, error) {
	if !start.Before(end) {
		return nil, domain.ErrInvalidInterval
	}

	hours, err := s.repo.FindWorkingHours(ctx, s.db, sellerID)
	if err != nil {
		return nil, err
	}
	var sched domain.Schedule
	declared := false
	if hours != nil {
		sched, err = domain.ParseSchedule(hours.Config)
		if err != nil {
			return nil, err
		}
		declared = true
	}

	blocked, err := s.repo.ListBlockedEventsOverlapping(ctx, s.db, start, end)
	if err != nil {
		return nil, err
	}

	// The fetch window spans the previous day too: an appointment with an
	// explicit end can start well before the slot's day and still run into
	// it. Appointments are assumed shorter than a day; exact overlap is
	// re-checked in-process.
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	existing, err := s.apptRepo.ListActiveBySeller(ctx, s.db, sellerID, dayStart.AddDate(0, 0, -1), dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return Evaluate(sched, declared, blocked, existing, start, end), nil
}

// Evaluate applies the three scheduling rules to already-fetched data. Kept
// separate from Check so the rule order is testable without a database.
func Evaluate(sched domain.Schedule, declared bool, blocked []*domain.BlockedEvent, existing []*apptdomain.Appointment, start, end time.Time) *domain.Violation {
	if declared && !sched.Covers(start, end) {
		return &domain.Violation{
			Rule:   domain.RuleWorkingHours,
			Reason: "horário fora do expediente do vendedor",
		}
	}

	for _, event := range blocked {
		if event != nil && event.Overlaps(start, end) {
			return &domain.Violation{
				Rule:   domain.RuleBlockedEvent,
				Reason: fmt.Sprintf("conflito com evento bloqueado: %s", event.Title),
			}
		}
	}

	for _, appt := range existing {
		if appt != nil && appt.Overlaps(start, end) {
			return &domain.Violation{
				Rule:   domain.RuleAppointmentOverlap,
				Reason: "conflito com agendamento existente do vendedor",
			}
		}
	}

	return nil
}

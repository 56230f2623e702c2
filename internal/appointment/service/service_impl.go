package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/vendahub/salesops/internal/appointment/domain"
	availdomain "github.com/vendahub/salesops/internal/availability/domain"
	"github.com/vendahub/salesops/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Checker availdomain.Checker
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	checker availdomain.Checker
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("appointment.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		checker: p.Checker,
	}
}

func (s *Service) Schedule(ctx context.Context, req domain.ScheduleRequest) (domain.Appointment, error) {
	sdrID, err := snowflake.ParseString(strings.TrimSpace(req.SDRID))
	if err != nil {
		return domain.Appointment{}, domain.ErrInvalidSchedule
	}
	leadID, err := snowflake.ParseString(strings.TrimSpace(req.LeadID))
	if err != nil {
		return domain.Appointment{}, domain.ErrInvalidSchedule
	}
	if req.ScheduledAt.IsZero() {
		return domain.Appointment{}, domain.ErrInvalidSchedule
	}

	var sellerID *snowflake.ID
	if strings.TrimSpace(req.SellerID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(req.SellerID))
		if err != nil {
			return domain.Appointment{}, domain.ErrInvalidSchedule
		}
		sellerID = &parsed
	}

	start := req.ScheduledAt.UTC()
	end := start.Add(domain.DefaultDuration)
	if req.ScheduledEnd != nil {
		end = req.ScheduledEnd.UTC()
		if !end.After(start) {
			return domain.Appointment{}, domain.ErrInvalidSchedule
		}
	}

	// Availability is checked against the seller who will run the meeting;
	// SDR-only appointments are checked against the SDR's own calendar.
	checkID := sdrID
	if sellerID != nil {
		checkID = *sellerID
	}
	violation, err := s.checker.Check(ctx, checkID, start, end)
	if err != nil {
		return domain.Appointment{}, err
	}
	if violation != nil {
		return domain.Appointment{}, &domain.ConflictError{Rule: violation.Rule, Reason: violation.Reason}
	}

	now := s.clock.Now()
	appt := domain.Appointment{
		ID:          s.genID.Generate(),
		SDRID:       sdrID,
		SellerID:    sellerID,
		LeadID:      leadID,
		ScheduledAt: start,
		Status:      domain.StatusAgendado,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.ScheduledEnd != nil {
		appt.ScheduledEnd = &end
	}

	if err := s.repo.Insert(ctx, s.db, &appt); err != nil {
		return domain.Appointment{}, err
	}
	return appt, nil
}

func (s *Service) Finalize(ctx context.Context, id string, req domain.FinalizeRequest) (domain.Appointment, error) {
	apptID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Appointment{}, domain.ErrInvalidID
	}
	if !req.Result.Valid() {
		return domain.Appointment{}, domain.ErrInvalidResult
	}

	appt, err := s.repo.FindByID(ctx, s.db, apptID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if appt == nil {
		return domain.Appointment{}, domain.ErrNotFound
	}
	if appt.Result != "" {
		return domain.Appointment{}, domain.ErrAlreadyFinalized
	}

	resultAt := s.clock.Now()
	if err := s.repo.SetResult(ctx, s.db, apptID, req.Result, resultAt); err != nil {
		return domain.Appointment{}, err
	}

	appt.Result = req.Result
	appt.ResultAt = &resultAt
	appt.Status = domain.StatusFinalizado
	appt.UpdatedAt = resultAt
	return *appt, nil
}

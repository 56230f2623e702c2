package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	apptdomain "github.com/vendahub/salesops/internal/appointment/domain"
	"github.com/vendahub/salesops/internal/commission/domain"
	"github.com/vendahub/salesops/internal/config"
	groupdomain "github.com/vendahub/salesops/internal/group/domain"
	memberdomain "github.com/vendahub/salesops/internal/member/domain"
	"github.com/vendahub/salesops/internal/observability/metrics"
	"github.com/vendahub/salesops/internal/period"
	quotadomain "github.com/vendahub/salesops/internal/quota/domain"
	saledomain "github.com/vendahub/salesops/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// weekFanout bounds concurrent per-week computations in MonthlyCommission.
const weekFanout = 4

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Metrics       *metrics.Metrics
	MemberRepo    memberdomain.Repository
	GroupRepo     groupdomain.Repository
	QuotaRepo     quotadomain.Repository
	ApptRepo      apptdomain.Repository
	SaleRepo      saledomain.Repository
	CommissionCfg *config.CommissionConfigHolder
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	metrics    *metrics.Metrics
	memberRepo memberdomain.Repository
	groupRepo  groupdomain.Repository
	quotaRepo  quotadomain.Repository
	apptRepo   apptdomain.Repository
	saleRepo   saledomain.Repository
	cfg        *config.CommissionConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("commission.service"),
		metrics:    p.Metrics,
		memberRepo: p.MemberRepo,
		groupRepo:  p.GroupRepo,
		quotaRepo:  p.QuotaRepo,
		apptRepo:   p.ApptRepo,
		saleRepo:   p.SaleRepo,
		cfg:        p.CommissionCfg,
	}
}

func (s *Service) MemberAttainment(ctx context.Context, req domain.MemberAttainmentRequest) (domain.Attainment, error) {
	start := time.Now()
	memberID, err := snowflake.ParseString(strings.TrimSpace(req.MemberID))
	if err != nil {
		return domain.Attainment{}, domain.ErrInvalidID
	}

	member, err := s.memberRepo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.Attainment{}, err
	}
	if member == nil {
		return domain.Attainment{}, domain.ErrMemberNotFound
	}

	wk := period.WeekOf(req.Year, req.Month, req.Week, time.UTC)
	table := s.loadQuotaTable(ctx)
	att := s.memberAttainment(ctx, *member, wk, table)
	s.metrics.ObserveAggregation("member", start, nil)
	return att, nil
}

func (s *Service) SupervisorCommission(ctx context.Context, req domain.SupervisorCommissionRequest) (domain.GroupResult, error) {
	start := time.Now()
	supervisor, group, err := s.resolveGroup(ctx, req.SupervisorID)
	if err != nil {
		s.metrics.ObserveAggregation("group", start, err)
		return domain.GroupResult{}, err
	}

	wk := period.WeekOf(req.Year, req.Month, req.Week, time.UTC)
	table := s.loadQuotaTable(ctx)

	members, err := s.eligibleMembers(ctx, group.ID, wk)
	if err != nil {
		s.metrics.ObserveAggregation("group", start, err)
		return domain.GroupResult{}, err
	}

	attainments := make([]domain.Attainment, 0, len(members))
	for _, m := range members {
		attainments = append(attainments, s.memberAttainment(ctx, m, wk, table))
	}

	result := s.buildGroupResult(*supervisor, wk, attainments)
	s.metrics.ObserveAggregation("group", start, nil)
	return result, nil
}

// MonthlyCommission is the batched variant of SupervisorCommission: group,
// membership and quota rows are fetched once, each week issues one batched
// query per activity type, and week computations run in parallel. Output
// must match the single-week path exactly.
func (s *Service) MonthlyCommission(ctx context.Context, req domain.MonthlyCommissionRequest) ([]domain.GroupResult, error) {
	start := time.Now()
	supervisor, group, err := s.resolveGroup(ctx, req.SupervisorID)
	if err != nil {
		s.metrics.ObserveAggregation("monthly", start, err)
		return nil, err
	}

	weeks := period.WeeksIn(req.Year, req.Month, time.UTC)
	if len(weeks) == 0 {
		s.metrics.ObserveAggregation("monthly", start, domain.ErrInvalidPeriod)
		return nil, domain.ErrInvalidPeriod
	}
	table := s.loadQuotaTable(ctx)

	// Everyone who was in the group at any point of the month; each week
	// narrows this set down locally.
	memberships, err := s.groupRepo.ListMembershipsOverlapping(ctx, s.db, group.ID, weeks[0].Start, weeks[len(weeks)-1].End)
	if err != nil {
		s.metrics.ObserveAggregation("monthly", start, err)
		return nil, err
	}
	members, err := s.membersByID(ctx, memberships)
	if err != nil {
		s.metrics.ObserveAggregation("monthly", start, err)
		return nil, err
	}

	results := make([]domain.GroupResult, len(weeks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(weekFanout)
	for i, wk := range weeks {
		i, wk := i, wk
		g.Go(func() error {
			eligible := eligibleForWeek(memberships, members, wk)
			attainments := s.weekAttainments(gctx, eligible, wk, table)
			results[i] = s.buildGroupResult(*supervisor, wk, attainments)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.ObserveAggregation("monthly", start, err)
		return nil, err
	}

	s.metrics.ObserveAggregation("monthly", start, nil)
	return results, nil
}

// weekAttainments computes one week from two batched queries, one per
// activity type, then reuses the shared in-process filters. A failed fetch
// degrades that activity type to zero, matching the single-week path.
func (s *Service) weekAttainments(ctx context.Context, members []memberdomain.Member, wk period.Week, table quotadomain.Table) []domain.Attainment {
	var sdrIDs, sellerIDs []snowflake.ID
	for _, m := range members {
		switch {
		case m.Role.IsSDR():
			sdrIDs = append(sdrIDs, m.ID)
		case m.Role.IsSeller():
			sellerIDs = append(sellerIDs, m.ID)
		}
	}

	appts, err := s.apptRepo.ListBySDRs(ctx, s.db, sdrIDs, wk.Start, wk.End)
	if err != nil {
		s.log.Warn("batched appointment fetch failed, degrading to zero",
			zap.Time("week_start", wk.Start), zap.Error(err))
		s.metrics.AggregationDegradations.WithLabelValues("sdr").Inc()
		appts = nil
	}
	sales, err := s.saleRepo.ListEnrolledBySellers(ctx, s.db, sellerIDs, wk.End)
	if err != nil {
		s.log.Warn("batched sale fetch failed, degrading to zero",
			zap.Time("week_start", wk.Start), zap.Error(err))
		s.metrics.AggregationDegradations.WithLabelValues("vendedor").Inc()
		sales = nil
	}

	attainments := make([]domain.Attainment, 0, len(members))
	for _, m := range members {
		var realized float64
		switch {
		case m.Role.IsSDR():
			realized = realizedFromAppointments(appts, m.ID, wk)
		case m.Role.IsSeller():
			realized = realizedFromSales(sales, m.ID, wk)
		}
		attainments = append(attainments, buildAttainment(m, realized, table))
	}
	return attainments
}

func (s *Service) resolveGroup(ctx context.Context, rawID string) (*memberdomain.Member, *groupdomain.Group, error) {
	supervisorID, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil {
		return nil, nil, domain.ErrInvalidID
	}

	supervisor, err := s.memberRepo.FindByID(ctx, s.db, supervisorID)
	if err != nil {
		return nil, nil, err
	}
	if supervisor == nil || supervisor.Role != memberdomain.RoleSupervisor {
		return nil, nil, domain.ErrSupervisorNotFound
	}

	group, err := s.groupRepo.FindBySupervisor(ctx, s.db, supervisorID)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, domain.ErrGroupNotFound
	}
	return supervisor, group, nil
}

func (s *Service) eligibleMembers(ctx context.Context, groupID snowflake.ID, wk period.Week) ([]memberdomain.Member, error) {
	memberships, err := s.groupRepo.ListMembershipsOverlapping(ctx, s.db, groupID, wk.Start, wk.End)
	if err != nil {
		return nil, err
	}
	members, err := s.membersByID(ctx, memberships)
	if err != nil {
		return nil, err
	}
	return eligibleForWeek(memberships, members, wk), nil
}

func (s *Service) membersByID(ctx context.Context, memberships []*groupdomain.GroupMember) (map[snowflake.ID]memberdomain.Member, error) {
	seen := make(map[snowflake.ID]struct{}, len(memberships))
	ids := make([]snowflake.ID, 0, len(memberships))
	for _, ms := range memberships {
		if ms == nil {
			continue
		}
		if _, ok := seen[ms.MemberID]; ok {
			continue
		}
		seen[ms.MemberID] = struct{}{}
		ids = append(ids, ms.MemberID)
	}

	rows, err := s.memberRepo.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	members := make(map[snowflake.ID]memberdomain.Member, len(rows))
	for _, row := range rows {
		if row != nil {
			members[row.ID] = *row
		}
	}
	return members, nil
}

// eligibleForWeek filters the month's membership list down to one week:
// the membership interval must overlap the week and the member must be an
// active SDR or seller. Output is sorted by id so both aggregation paths
// produce identical member ordering.
func eligibleForWeek(memberships []*groupdomain.GroupMember, members map[snowflake.ID]memberdomain.Member, wk period.Week) []memberdomain.Member {
	seen := make(map[snowflake.ID]struct{})
	var eligible []memberdomain.Member
	for _, ms := range memberships {
		if ms == nil || !ms.OverlapsWindow(wk.Start, wk.End) {
			continue
		}
		if _, ok := seen[ms.MemberID]; ok {
			continue
		}
		m, ok := members[ms.MemberID]
		if !ok || !m.Active || !m.Role.CountsTowardGroup() {
			continue
		}
		seen[ms.MemberID] = struct{}{}
		eligible = append(eligible, m)
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })
	return eligible
}

// memberAttainment runs one member through the role calculator. Any fetch
// failure logs and degrades to a zeroed result so a dashboard still renders.
func (s *Service) memberAttainment(ctx context.Context, m memberdomain.Member, wk period.Week, table quotadomain.Table) domain.Attainment {
	calc := s.calculatorFor(m.Role, table)
	if calc == nil {
		return domain.Attainment{MemberID: m.ID, Name: m.Name, Role: m.Role, Level: m.Level}
	}

	realized, err := calc.RealizedUnits(ctx, m.ID, wk)
	if err != nil {
		s.log.Warn("attainment fetch failed, degrading to zero",
			zap.String("member_id", m.ID.String()),
			zap.String("role", string(m.Role)),
			zap.Time("week_start", wk.Start),
			zap.Error(err),
		)
		s.metrics.AggregationDegradations.WithLabelValues(roleFamily(m.Role)).Inc()
		return domain.Attainment{MemberID: m.ID, Name: m.Name, Role: m.Role, Level: m.Level}
	}

	return buildAttainment(m, realized, table)
}

// roleFamily is the degradation metric vocabulary: one label per activity
// type, shared by the single-week and batched paths so the series aggregate.
func roleFamily(role memberdomain.Role) string {
	if role.IsSDR() {
		return "sdr"
	}
	return "vendedor"
}

func (s *Service) calculatorFor(role memberdomain.Role, table quotadomain.Table) Calculator {
	switch {
	case role.IsSDR():
		return sdrCalculator{db: s.db, repo: s.apptRepo, role: role, table: table}
	case role.IsSeller():
		return sellerCalculator{db: s.db, repo: s.saleRepo, table: table}
	default:
		return nil
	}
}

func buildAttainment(m memberdomain.Member, realized float64, table quotadomain.Table) domain.Attainment {
	quota := table.Lookup(m.Role, m.Level)
	var percent float64
	if quota > 0 {
		percent = realized / float64(quota) * 100
	}
	return domain.Attainment{
		MemberID: m.ID,
		Name:     m.Name,
		Role:     m.Role,
		Level:    m.Level,
		Realized: realized,
		Quota:    quota,
		Percent:  percent,
	}
}

func (s *Service) buildGroupResult(supervisor memberdomain.Member, wk period.Week, attainments []domain.Attainment) domain.GroupResult {
	cfg := s.cfg.Get()
	result := domain.GroupResult{
		SupervisorID: supervisor.ID,
		Week:         wk,
		Members:      attainments,
		BaseCents:    supervisorBase(cfg.SupervisorBases, supervisor.Level),
	}
	if len(attainments) == 0 {
		return result
	}

	var sum float64
	for _, att := range attainments {
		sum += att.Percent
	}
	result.AveragePercent = sum / float64(len(attainments))
	result.Multiplier = tierMultiplier(cfg.Tiers, result.AveragePercent)
	result.AmountCents = int64(float64(result.BaseCents) * result.Multiplier)
	return result
}

// loadQuotaTable builds the per-run quota lookup. A failed load degrades to
// the configured defaults so aggregation still produces a dashboard.
func (s *Service) loadQuotaTable(ctx context.Context) quotadomain.Table {
	rows, err := s.quotaRepo.LoadAll(ctx, s.db)
	if err != nil {
		s.log.Warn("quota table load failed, using defaults", zap.Error(err))
		rows = nil
	}
	return quotadomain.BuildTable(rows, s.cfg.Get().QuotaDefaults)
}

// tierMultiplier finds the band containing percent. Bands are sorted by
// MinPercent and match min-inclusive, max-exclusive.
func tierMultiplier(tiers []config.CommissionTier, percent float64) float64 {
	for _, tier := range tiers {
		if percent < tier.MinPercent {
			continue
		}
		if tier.MaxPercent == nil || percent < *tier.MaxPercent {
			return tier.Multiplier
		}
	}
	return 0
}

func supervisorBase(bases []config.SupervisorBase, level memberdomain.Level) int64 {
	for _, base := range bases {
		if memberdomain.Level(base.Level) == level {
			return base.AmountCents
		}
	}
	return 0
}

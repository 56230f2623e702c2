package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/vendahub/salesops/internal/clock"
	"github.com/vendahub/salesops/internal/lead/domain"
	"github.com/vendahub/salesops/internal/observability/metrics"
	"github.com/vendahub/salesops/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Metrics *metrics.Metrics
	Repo    domain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	metrics *metrics.Metrics
	repo    domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("lead.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		metrics: p.Metrics,
		repo:    p.Repo,
	}
}

func (s *Service) Ingest(ctx context.Context, payload map[string]any) (domain.Lead, error) {
	if len(payload) == 0 {
		s.metrics.LeadsIngestedTotal.WithLabelValues("empty").Inc()
		return domain.Lead{}, domain.ErrEmptyPayload
	}

	fields := domain.ExtractFields(payload)
	now := s.clock.Now()
	lead := domain.Lead{
		ID:          s.genID.Generate(),
		Name:        fields.Name,
		Email:       fields.Email,
		Phone:       fields.Phone,
		UTMSource:   fields.UTMSource,
		UTMMedium:   fields.UTMMedium,
		UTMCampaign: fields.UTMCampaign,
		TrackingID:  fields.TrackingID,
		RawPayload:  datatypes.JSONMap(payload),
		ReceivedAt:  now,
		CreatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &lead); err != nil {
		s.metrics.LeadsIngestedTotal.WithLabelValues("error").Inc()
		s.log.Error("insert lead", zap.Error(err))
		return domain.Lead{}, err
	}

	s.metrics.LeadsIngestedTotal.WithLabelValues("ok").Inc()
	s.log.Info("lead ingested",
		zap.String("lead_id", lead.ID.String()),
		zap.String("utm_source", lead.UTMSource),
	)
	return lead, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	leadID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Lead{}, domain.ErrInvalidID
	}

	lead, err := s.repo.FindByID(ctx, s.db, leadID)
	if err != nil {
		return domain.Lead{}, err
	}
	if lead == nil {
		return domain.Lead{}, domain.ErrNotFound
	}
	return *lead, nil
}

func (s *Service) List(ctx context.Context, req domain.ListLeadRequest) (domain.ListLeadResponse, error) {
	limit := req.Pagination.PageSize
	if limit <= 0 {
		limit = 50
	}

	filter := domain.ListFilter{Limit: limit + 1}
	if req.Pagination.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.Pagination.PageToken)
		if err != nil {
			return domain.ListLeadResponse{}, domain.ErrInvalidID
		}
		afterID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return domain.ListLeadResponse{}, domain.ErrInvalidID
		}
		filter.AfterID = afterID
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListLeadResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, limit, func(lead *domain.Lead) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: lead.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})

	if len(items) > limit {
		items = items[:limit]
	}
	leads := make([]domain.Lead, 0, len(items))
	for _, item := range items {
		leads = append(leads, *item)
	}
	return domain.ListLeadResponse{Leads: leads, PageInfo: pageInfo}, nil
}

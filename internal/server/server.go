package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vendahub/salesops/internal/appointment"
	apptdomain "github.com/vendahub/salesops/internal/appointment/domain"
	"github.com/vendahub/salesops/internal/availability"
	"github.com/vendahub/salesops/internal/clock"
	"github.com/vendahub/salesops/internal/commission"
	commissiondomain "github.com/vendahub/salesops/internal/commission/domain"
	"github.com/vendahub/salesops/internal/config"
	"github.com/vendahub/salesops/internal/group"
	"github.com/vendahub/salesops/internal/lead"
	leaddomain "github.com/vendahub/salesops/internal/lead/domain"
	"github.com/vendahub/salesops/internal/member"
	memberdomain "github.com/vendahub/salesops/internal/member/domain"
	obslogger "github.com/vendahub/salesops/internal/observability/logger"
	obsmetrics "github.com/vendahub/salesops/internal/observability/metrics"
	"github.com/vendahub/salesops/internal/quota"
	"github.com/vendahub/salesops/internal/sale"
	saledomain "github.com/vendahub/salesops/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	member.Module,
	group.Module,
	quota.Module,
	availability.Module,
	appointment.Module,
	sale.Module,
	commission.Module,
	lead.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, m *obsmetrics.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, log *zap.Logger, m *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(cfg, log, m)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	clock          clock.Clock
	memberSvc      memberdomain.Service
	appointmentSvc apptdomain.Service
	saleSvc        saledomain.Service
	commissionSvc  commissiondomain.Service
	leadSvc        leaddomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Clock          clock.Clock
	MemberSvc      memberdomain.Service
	AppointmentSvc apptdomain.Service
	SaleSvc        saledomain.Service
	CommissionSvc  commissiondomain.Service
	LeadSvc        leaddomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		clock:          p.Clock,
		memberSvc:      p.MemberSvc,
		appointmentSvc: p.AppointmentSvc,
		saleSvc:        p.SaleSvc,
		commissionSvc:  p.CommissionSvc,
		leadSvc:        p.LeadSvc,
	}

	svc.registerAPIRoutes()
	svc.registerWebhookRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Calendar --------
	api.GET("/weeks", s.ListWeeks)
	api.GET("/weeks/current", s.GetCurrentWeek)

	// -------- Members --------
	api.GET("/members", s.ListMembers)
	api.POST("/members", s.CreateMember)
	api.GET("/members/:id", s.GetMemberByID)
	api.POST("/members/:id/deactivate", s.DeactivateMember)
	api.GET("/members/:id/attainment", s.GetMemberAttainment)

	// -------- Commission --------
	api.GET("/supervisors/:id/commission", s.GetSupervisorCommission)
	api.GET("/supervisors/:id/commission/monthly", s.GetMonthlyCommission)

	// -------- Appointments --------
	api.POST("/appointments", s.ScheduleAppointment)
	api.POST("/appointments/:id/result", s.FinalizeAppointment)

	// -------- Sales --------
	api.GET("/sales/:id", s.GetSaleByID)
	api.POST("/sales/:id/approve", s.ApproveSale)

	// -------- Leads --------
	api.GET("/leads", s.ListLeads)
	api.GET("/leads/:id", s.GetLeadByID)
}

func (s *Server) registerWebhookRoutes() {
	hooks := s.engine.Group("/webhooks")

	hooks.POST("/leads", s.IngestLead)
	hooks.OPTIONS("/leads", s.LeadPreflight)
}

package migration

import (
	"strings"

	apptdomain "github.com/vendahub/salesops/internal/appointment/domain"
	availdomain "github.com/vendahub/salesops/internal/availability/domain"
	"github.com/vendahub/salesops/internal/config"
	groupdomain "github.com/vendahub/salesops/internal/group/domain"
	leaddomain "github.com/vendahub/salesops/internal/lead/domain"
	memberdomain "github.com/vendahub/salesops/internal/member/domain"
	quotadomain "github.com/vendahub/salesops/internal/quota/domain"
	saledomain "github.com/vendahub/salesops/internal/sale/domain"
	"github.com/vendahub/salesops/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, commissionCfg *config.CommissionConfigHolder) error {
		if strings.EqualFold(cfg.DBType, "postgres") {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql are development conveniences; AutoMigrate
			// keeps them usable without a second migration track.
			if err := conn.AutoMigrate(
				&memberdomain.Member{},
				&groupdomain.Group{},
				&groupdomain.GroupMember{},
				&quotadomain.WeeklyQuota{},
				&leaddomain.Lead{},
				&apptdomain.Appointment{},
				&saledomain.Sale{},
				&saledomain.Student{},
				&saledomain.Course{},
				&saledomain.ScoringRule{},
				&availdomain.WorkingHours{},
				&availdomain.BlockedEvent{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultQuotas(conn, commissionCfg.Get().QuotaDefaults)
	}),
)

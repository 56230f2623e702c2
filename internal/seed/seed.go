package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vendahub/salesops/internal/config"
	memberdomain "github.com/vendahub/salesops/internal/member/domain"
	quotadomain "github.com/vendahub/salesops/internal/quota/domain"
	"github.com/vendahub/salesops/pkg/db"
	"gorm.io/gorm"
)

// EnsureDefaultQuotas writes a weekly_quotas row for every configured
// (role, level) default that has no row yet. Existing rows are never
// touched, so operator overrides survive restarts.
func EnsureDefaultQuotas(conn *gorm.DB, defaults []config.QuotaDefault) error {
	if conn == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, def := range defaults {
		var existing quotadomain.WeeklyQuota
		err := conn.WithContext(ctx).
			Where("role = ? AND level = ?", def.Role, def.Level).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		quota := quotadomain.WeeklyQuota{
			ID:        node.Generate(),
			Role:      memberdomain.Role(def.Role),
			Level:     memberdomain.Level(def.Level),
			Target:    def.Target,
			UpdatedAt: time.Now().UTC(),
		}
		if err := conn.WithContext(ctx).Create(&quota).Error; err != nil {
			// Concurrent instances may race on first boot.
			if db.IsDuplicateKeyErr(err) {
				continue
			}
			return err
		}
	}
	return nil
}

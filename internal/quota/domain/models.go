package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	memberdomain "github.com/vendahub/salesops/internal/member/domain"
)

// WeeklyQuota is the weekly target for a (role, level) pair: finalized
// meetings for SDR roles, validated points for sellers.
type WeeklyQuota struct {
	ID        snowflake.ID       `gorm:"primaryKey" json:"id"`
	Role      memberdomain.Role  `gorm:"not null;uniqueIndex:idx_weekly_quotas_role_level" json:"role"`
	Level     memberdomain.Level `gorm:"not null;uniqueIndex:idx_weekly_quotas_role_level" json:"level"`
	Target    int                `gorm:"not null" json:"target"`
	UpdatedAt time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (WeeklyQuota) TableName() string { return "weekly_quotas" }

package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PlaceholderName is stored when no recognizable name can be extracted from
// a captured submission.
const PlaceholderName = "Nome não informado"

// Lead is one captured marketing submission, kept with its raw payload so
// extraction heuristics can be replayed later.
type Lead struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"not null" json:"name"`
	Email       string            `gorm:"index" json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	UTMSource   string            `gorm:"column:utm_source" json:"utm_source,omitempty"`
	UTMMedium   string            `gorm:"column:utm_medium" json:"utm_medium,omitempty"`
	UTMCampaign string            `gorm:"column:utm_campaign" json:"utm_campaign,omitempty"`
	TrackingID  string            `gorm:"column:tracking_id" json:"tracking_id,omitempty"`
	RawPayload  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"raw_payload,omitempty"`
	ReceivedAt  time.Time         `gorm:"not null;index" json:"received_at"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Lead) TableName() string { return "leads" }

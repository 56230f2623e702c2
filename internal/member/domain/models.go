package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role identifies a member's position on the sales team. The string values
// are the ones stored and exchanged with the dashboard clients.
type Role string

const (
	RoleVendedor    Role = "vendedor"
	RoleSDRInbound  Role = "sdr_inbound"
	RoleSDROutbound Role = "sdr_outbound"
	RoleSupervisor  Role = "supervisor"
	RoleDiretor     Role = "diretor"
	RoleSecretaria  Role = "secretaria"
	RoleAdmin       Role = "admin"
)

// IsSDR reports whether the role performs scheduling work measured in
// finalized meetings.
func (r Role) IsSDR() bool {
	return r == RoleSDRInbound || r == RoleSDROutbound
}

// IsSeller reports whether the role performs enrollment work measured in
// validated sale points.
func (r Role) IsSeller() bool {
	return r == RoleVendedor
}

// CountsTowardGroup reports whether the role contributes to a supervisor
// group's attainment average.
func (r Role) CountsTowardGroup() bool {
	return r.IsSDR() || r.IsSeller()
}

func (r Role) Valid() bool {
	switch r {
	case RoleVendedor, RoleSDRInbound, RoleSDROutbound, RoleSupervisor, RoleDiretor, RoleSecretaria, RoleAdmin:
		return true
	default:
		return false
	}
}

// Level is a member's seniority, which together with Role selects the
// weekly quota.
type Level string

const (
	LevelJunior Level = "junior"
	LevelPleno  Level = "pleno"
	LevelSenior Level = "senior"
)

func (l Level) Valid() bool {
	switch l {
	case LevelJunior, LevelPleno, LevelSenior:
		return true
	default:
		return false
	}
}

type Member struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `gorm:"not null;uniqueIndex" json:"email"`
	Role      Role         `gorm:"not null;index" json:"role"`
	Level     Level        `gorm:"not null" json:"level"`
	Active    bool         `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Member) TableName() string { return "members" }

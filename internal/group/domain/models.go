package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Group is a supervisor-owned team of SDRs and sellers.
type Group struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	SupervisorID snowflake.ID `gorm:"not null;uniqueIndex" json:"supervisor_id"`
	Name         string       `gorm:"not null" json:"name"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Group) TableName() string { return "groups" }

// GroupMember is a time-bounded membership: the member belongs to the group
// from JoinedAt until LeftAt (nil while still a member).
type GroupMember struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	GroupID  snowflake.ID `gorm:"not null;index" json:"group_id"`
	MemberID snowflake.ID `gorm:"not null;index" json:"member_id"`
	JoinedAt time.Time    `gorm:"not null" json:"joined_at"`
	LeftAt   *time.Time   `json:"left_at,omitempty"`
}

func (GroupMember) TableName() string { return "group_members" }

// OverlapsWindow reports whether the membership interval [JoinedAt, LeftAt)
// intersects [start, end]. A member only counts toward a week's aggregation
// when this holds.
func (m GroupMember) OverlapsWindow(start, end time.Time) bool {
	if m.JoinedAt.After(end) {
		return false
	}
	if m.LeftAt != nil && !m.LeftAt.After(start) {
		return false
	}
	return true
}

package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, group *Group) error
	FindBySupervisor(ctx context.Context, db *gorm.DB, supervisorID snowflake.ID) (*Group, error)
	AddMember(ctx context.Context, db *gorm.DB, membership *GroupMember) error
	RemoveMember(ctx context.Context, db *gorm.DB, groupID, memberID snowflake.ID, leftAt time.Time) error
	// ListMembershipsOverlapping returns memberships whose interval intersects
	// [start, end]. No particular order is guaranteed.
	ListMembershipsOverlapping(ctx context.Context, db *gorm.DB, groupID snowflake.ID, start, end time.Time) ([]*GroupMember, error)
}

var (
	ErrGroupNotFound = errors.New("group_not_found")
)

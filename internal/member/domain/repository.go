package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, member *Member) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Member, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]*Member, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*Member, error)
	SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool) error
}

type ListFilter struct {
	Role       Role
	ActiveOnly bool
}

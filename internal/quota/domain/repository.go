package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	LoadAll(ctx context.Context, db *gorm.DB) ([]WeeklyQuota, error)
	Upsert(ctx context.Context, db *gorm.DB, quota *WeeklyQuota) error
}

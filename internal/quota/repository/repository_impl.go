package repository

import (
	"context"

	"github.com/vendahub/salesops/internal/quota/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) LoadAll(ctx context.Context, db *gorm.DB) ([]domain.WeeklyQuota, error) {
	var rows []domain.WeeklyQuota
	err := db.WithContext(ctx).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, quota *domain.WeeklyQuota) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "role"}, {Name: "level"}},
			DoUpdates: clause.AssignmentColumns([]string{"target", "updated_at"}),
		}).
		Create(quota).Error
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vendahub/salesops/internal/availability/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindWorkingHours(ctx context.Context, db *gorm.DB, memberID snowflake.ID) (*domain.WorkingHours, error) {
	var hours domain.WorkingHours
	err := db.WithContext(ctx).First(&hours, "member_id = ?", memberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hours, nil
}

func (r *repo) ListBlockedEventsOverlapping(ctx context.Context, db *gorm.DB, start, end time.Time) ([]*domain.BlockedEvent, error) {
	var events []*domain.BlockedEvent
	err := db.WithContext(ctx).
		Where("starts_at < ? AND ends_at > ?", end, start).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vendahub/salesops/internal/appointment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, appt *domain.Appointment) error {
	return db.WithContext(ctx).Create(appt).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Appointment, error) {
	var appt domain.Appointment
	err := db.WithContext(ctx).First(&appt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *repo) ListBySDRs(ctx context.Context, db *gorm.DB, sdrIDs []snowflake.ID, start, end time.Time) ([]*domain.Appointment, error) {
	if len(sdrIDs) == 0 {
		return nil, nil
	}
	var appts []*domain.Appointment
	err := db.WithContext(ctx).
		Where("sdr_id IN ?", sdrIDs).
		Where("scheduled_at >= ? AND scheduled_at <= ?", start, end).
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *repo) ListActiveBySeller(ctx context.Context, db *gorm.DB, sellerID snowflake.ID, start, end time.Time) ([]*domain.Appointment, error) {
	var appts []*domain.Appointment
	err := db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Where("status <> ?", domain.StatusCancelado).
		Where("scheduled_at >= ? AND scheduled_at <= ?", start, end).
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *repo) SetResult(ctx context.Context, db *gorm.DB, id snowflake.ID, result domain.Result, resultAt time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ? AND (result IS NULL OR result = '')", id).
		Updates(map[string]any{
			"result":     result,
			"result_at":  resultAt,
			"status":     domain.StatusFinalizado,
			"updated_at": resultAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyFinalized
	}
	return nil
}

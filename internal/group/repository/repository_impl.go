package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vendahub/salesops/internal/group/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, group *domain.Group) error {
	return db.WithContext(ctx).Create(group).Error
}

func (r *repo) FindBySupervisor(ctx context.Context, db *gorm.DB, supervisorID snowflake.ID) (*domain.Group, error) {
	var group domain.Group
	err := db.WithContext(ctx).First(&group, "supervisor_id = ?", supervisorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repo) AddMember(ctx context.Context, db *gorm.DB, membership *domain.GroupMember) error {
	return db.WithContext(ctx).Create(membership).Error
}

func (r *repo) RemoveMember(ctx context.Context, db *gorm.DB, groupID, memberID snowflake.ID, leftAt time.Time) error {
	result := db.WithContext(ctx).
		Model(&domain.GroupMember{}).
		Where("group_id = ? AND member_id = ? AND left_at IS NULL", groupID, memberID).
		Update("left_at", leftAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repo) ListMembershipsOverlapping(ctx context.Context, db *gorm.DB, groupID snowflake.ID, start, end time.Time) ([]*domain.GroupMember, error) {
	var memberships []*domain.GroupMember
	err := db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Where("joined_at <= ?", end).
		Where("left_at IS NULL OR left_at > ?", start).
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vendahub/salesops/internal/sale/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sale *domain.Sale) error {
	return db.WithContext(ctx).Create(sale).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Sale, error) {
	var sale domain.Sale
	err := db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repo) ListEnrolledBySellers(ctx context.Context, db *gorm.DB, sellerIDs []snowflake.ID, until time.Time) ([]*domain.Sale, error) {
	if len(sellerIDs) == 0 {
		return nil, nil
	}
	var sales []*domain.Sale
	err := db.WithContext(ctx).
		Where("seller_id IN ?", sellerIDs).
		Where("status = ?", domain.StatusMatriculado).
		Where("submitted_at <= ?", until).
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *repo) UpdateExpectedPoints(ctx context.Context, db *gorm.DB, id snowflake.ID, points float64) error {
	return db.WithContext(ctx).
		Model(&domain.Sale{}).
		Where("id = ?", id).
		Update("expected_points", points).Error
}

func (r *repo) LinkStudent(ctx context.Context, db *gorm.DB, id, studentID snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.Sale{}).
		Where("id = ?", id).
		Update("student_id", studentID).Error
}

func (r *repo) SetStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status, at time.Time) error {
	updates := map[string]any{"status": status, "updated_at": at}
	if status == domain.StatusMatriculado {
		updates["approved_at"] = at
	}
	res := db.WithContext(ctx).
		Model(&domain.Sale{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) FindStudentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Student, error) {
	var student domain.Student
	err := db.WithContext(ctx).First(&student, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *repo) FindStudentByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Student, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, nil
	}
	var student domain.Student
	err := db.WithContext(ctx).First(&student, "lower(email) = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *repo) FindStudentByName(ctx context.Context, db *gorm.DB, name string) (*domain.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var student domain.Student
	err := db.WithContext(ctx).First(&student, "lower(name) = ?", strings.ToLower(name)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *repo) InsertStudent(ctx context.Context, db *gorm.DB, student *domain.Student) error {
	return db.WithContext(ctx).Create(student).Error
}

func (r *repo) FindCourseByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Course, error) {
	var course domain.Course
	err := db.WithContext(ctx).First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *repo) ListActiveScoringRules(ctx context.Context, db *gorm.DB) ([]domain.ScoringRule, error) {
	var rules []domain.ScoringRule
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

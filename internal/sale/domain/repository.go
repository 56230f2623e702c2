package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sale *Sale) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Sale, error)
	// ListEnrolledBySellers returns matriculado sales submitted up to the
	// given instant. Effective-date bucketing happens in-process because the
	// date is a fallback chain, not a single column.
	ListEnrolledBySellers(ctx context.Context, db *gorm.DB, sellerIDs []snowflake.ID, until time.Time) ([]*Sale, error)
	UpdateExpectedPoints(ctx context.Context, db *gorm.DB, id snowflake.ID, points float64) error
	LinkStudent(ctx context.Context, db *gorm.DB, id, studentID snowflake.ID) error
	SetStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status, at time.Time) error

	FindStudentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Student, error)
	FindStudentByEmail(ctx context.Context, db *gorm.DB, email string) (*Student, error)
	FindStudentByName(ctx context.Context, db *gorm.DB, name string) (*Student, error)
	InsertStudent(ctx context.Context, db *gorm.DB, student *Student) error

	FindCourseByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Course, error)
	ListActiveScoringRules(ctx context.Context, db *gorm.DB) ([]ScoringRule, error)
}

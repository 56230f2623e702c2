package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, appt *Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Appointment, error)
	// ListBySDRs returns appointments for the given SDRs with scheduled_at in
	// [start, end]. Result filtering happens in-process.
	ListBySDRs(ctx context.Context, db *gorm.DB, sdrIDs []snowflake.ID, start, end time.Time) ([]*Appointment, error)
	// ListActiveBySeller returns the seller's non-cancelled appointments with
	// scheduled_at in [start, end], for conflict checking.
	ListActiveBySeller(ctx context.Context, db *gorm.DB, sellerID snowflake.ID, start, end time.Time) ([]*Appointment, error)
	SetResult(ctx context.Context, db *gorm.DB, id snowflake.ID, result Result, resultAt time.Time) error
}

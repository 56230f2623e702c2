package domain

import (
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPendente    Status = "pendente"
	StatusMatriculado Status = "matriculado"
	StatusDesistiu    Status = "desistiu"
)

// Sale is a form submission on its way to becoming an enrollment. Only
// matriculado sales contribute points to the seller's weekly attainment.
type Sale struct {
	ID               snowflake.ID      `gorm:"primaryKey" json:"id"`
	SellerID         snowflake.ID      `gorm:"column:seller_id;not null;index:idx_sales_seller_status" json:"seller_id"`
	CourseID         snowflake.ID      `gorm:"not null" json:"course_id"`
	StudentID        *snowflake.ID     `gorm:"index" json:"student_id,omitempty"`
	Status           Status            `gorm:"not null;default:'pendente';index:idx_sales_seller_status" json:"status"`
	ExpectedPoints   float64           `gorm:"not null;default:0" json:"expected_points"`
	ValidatedPoints  *float64          `json:"validated_points,omitempty"`
	FormAnswers      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"form_answers,omitempty"`
	SubmittedAt      time.Time         `gorm:"not null;index" json:"submitted_at"`
	ContractSignedAt *time.Time        `json:"contract_signed_at,omitempty"`
	ApprovedAt       *time.Time        `json:"approved_at,omitempty"`
	CreatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Sale) TableName() string { return "sales" }

// EffectiveDate is the single date used to bucket a sale into a business
// week: approval, then contract signature, then last update, then
// submission. The first non-zero wins. Every call site must go through this
// function; per-site variations of the chain are a known source of
// inconsistent weekly totals.
func EffectiveDate(s Sale) time.Time {
	if s.ApprovedAt != nil && !s.ApprovedAt.IsZero() {
		return *s.ApprovedAt
	}
	if s.ContractSignedAt != nil && !s.ContractSignedAt.IsZero() {
		return *s.ContractSignedAt
	}
	if !s.UpdatedAt.IsZero() {
		return s.UpdatedAt
	}
	return s.SubmittedAt
}

// Points returns the sale's contribution to weekly attainment: validated
// points when present, the expected value otherwise.
func Points(s Sale) float64 {
	if s.ValidatedPoints != nil {
		return *s.ValidatedPoints
	}
	return s.ExpectedPoints
}

// MaxPlausiblePoints bounds a stored expected_points value; anything above
// is treated as corrupt and recomputed from the form answers.
const MaxPlausiblePoints = 100

// PointsImplausible reports whether a stored expected value must be
// recomputed.
func PointsImplausible(points float64) bool {
	return points <= 0 ||
		math.IsNaN(points) ||
		math.IsInf(points, 0) ||
		points > MaxPlausiblePoints
}

// Student is the enrolled (or prospective) student linked to a sale.
type Student struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `gorm:"index" json:"email,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Student) TableName() string { return "students" }

type Course struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Active    bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Course) TableName() string { return "courses" }

// ScoringRule awards points when a form answer matches. Field names the
// answer key, Match the expected value (case-insensitive).
type ScoringRule struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	Field  string       `gorm:"not null" json:"field"`
	Match  string       `gorm:"not null" json:"match"`
	Points float64      `gorm:"not null" json:"points"`
	Active bool         `gorm:"not null;default:true" json:"active"`
}

func (ScoringRule) TableName() string { return "scoring_rules" }

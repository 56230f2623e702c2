package domain

import (
	"context"
	"errors"

	memberdomain "github.com/vendahub/salesops/internal/member/domain"
)

// SaleView is the denormalized sale used by the dashboards. Unresolved
// relations stay nil; assembly never fails over a missing link.
type SaleView struct {
	Sale          Sale                 `json:"sale"`
	Student       *Student             `json:"student,omitempty"`
	Course        *Course              `json:"course,omitempty"`
	Seller        *memberdomain.Member `json:"seller,omitempty"`
	EffectiveDate string               `json:"effective_date"`
	Points        float64              `json:"points"`
}

type Service interface {
	// Assemble resolves the sale's relations and repairs an implausible
	// expected_points value, writing the correction back.
	Assemble(ctx context.Context, id string) (SaleView, error)
	// Approve marks a sale matriculado; only approved sales count points.
	Approve(ctx context.Context, id string) (Sale, error)
}

var (
	ErrInvalidID = errors.New("invalid_sale_id")
	ErrNotFound  = errors.New("sale_not_found")
)

package domain

import (
	"context"
	"errors"

	"github.com/vendahub/salesops/pkg/db/pagination"
)

type ListLeadRequest struct {
	Pagination pagination.Pagination
}

type ListLeadResponse struct {
	Leads    []Lead               `json:"leads"`
	PageInfo *pagination.PageInfo `json:"page_info"`
}

type Service interface {
	// Ingest persists a raw webhook submission after field extraction.
	// The payload is stored verbatim alongside the extracted fields.
	Ingest(ctx context.Context, payload map[string]any) (Lead, error)
	GetByID(ctx context.Context, id string) (Lead, error)
	List(ctx context.Context, req ListLeadRequest) (ListLeadResponse, error)
}

var (
	ErrEmptyPayload = errors.New("empty_payload")
	ErrInvalidID    = errors.New("invalid_lead_id")
	ErrNotFound     = errors.New("lead_not_found")
)

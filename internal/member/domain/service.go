package domain

import (
	"context"
	"errors"
)

type CreateMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Level Level  `json:"level"`
}

type ListMemberRequest struct {
	Role       Role
	ActiveOnly bool
}

type Service interface {
	Create(ctx context.Context, req CreateMemberRequest) (Member, error)
	GetByID(ctx context.Context, id string) (Member, error)
	List(ctx context.Context, req ListMemberRequest) ([]Member, error)
	SetActive(ctx context.Context, id string, active bool) error
}

var (
	ErrInvalidID    = errors.New("invalid_member_id")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidRole  = errors.New("invalid_role")
	ErrInvalidLevel = errors.New("invalid_level")
	ErrNotFound     = errors.New("member_not_found")
)

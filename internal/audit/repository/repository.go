package repository

import (
	"context"

	"user-registry/internal/audit/domain"
)

// Repository defines persistence for audit events.
type Repository interface {
	Create(ctx context.Context, e *domain.Event) error
}

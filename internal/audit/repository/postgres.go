package repository

import (
	"context"
	"database/sql"

	"user-registry/internal/audit/domain"
)

// PostgresRepository implements Repository over database/sql with the pgx driver.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an audit repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists one audit event.
func (r *PostgresRepository) Create(ctx context.Context, e *domain.Event) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_events (id, action, subject, metadata, created_at) VALUES ($1, $2, $3, $4, $5)",
		e.ID, e.Action, e.Subject, e.Metadata, e.CreatedAt)
	return err
}

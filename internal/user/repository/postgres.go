package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"user-registry/internal/user/domain"
)

const userColumns = "id, name, login, email, password, created_at"

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// PostgresRepository implements Repository over database/sql with the pgx driver.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns up to limit users in id order.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id LIMIT $1", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return nilIfNoRows(scanUser(row))
}

// FindFirst returns the first user matching any provided filter field, in id
// order so the first-match winner is stable. An empty filter matches nothing.
func (r *PostgresRepository) FindFirst(ctx context.Context, f Filter) (*domain.User, error) {
	var conds []string
	var args []any
	if f.Name != "" {
		args = append(args, f.Name)
		conds = append(conds, fmt.Sprintf("name = $%d", len(args)))
	}
	if f.Login != "" {
		args = append(args, f.Login)
		conds = append(conds, fmt.Sprintf("login = $%d", len(args)))
	}
	if f.Email != "" {
		args = append(args, f.Email)
		conds = append(conds, fmt.Sprintf("email = $%d", len(args)))
	}
	if len(conds) == 0 {
		return nil, nil
	}

	query := "SELECT " + userColumns + " FROM users WHERE " +
		strings.Join(conds, " OR ") + " ORDER BY id LIMIT 1"
	row := r.db.QueryRowContext(ctx, query, args...)
	return nilIfNoRows(scanUser(row))
}

// FindByLoginOrEmail returns a user holding either value, or nil if neither is taken.
func (r *PostgresRepository) FindByLoginOrEmail(ctx context.Context, login, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE login = $1 OR email = $2 ORDER BY id LIMIT 1",
		login, email)
	return nilIfNoRows(scanUser(row))
}

// Create inserts the user and returns it with the store-assigned id and
// created_at. A unique-constraint violation maps to ErrDuplicate.
func (r *PostgresRepository) Create(ctx context.Context, nu domain.NewUser) (*domain.User, error) {
	u := &domain.User{
		Name:     nu.Name,
		Login:    nu.Login,
		Email:    nu.Email,
		Password: nu.Password,
	}
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (name, login, email, password) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		nu.Name, nu.Login, nu.Email, nu.Password,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	if err := s.Scan(&u.ID, &u.Name, &u.Login, &u.Email, &u.Password, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func nilIfNoRows(u *domain.User, err error) (*domain.User, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

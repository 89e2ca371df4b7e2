package repository

import (
	"context"
	"errors"

	"user-registry/internal/user/domain"
)

// ErrDuplicate is returned by Create when the insert hits the users table's
// unique constraints on login or email. It is the backstop for the race window
// between the uniqueness pre-check and the insert.
var ErrDuplicate = errors.New("user: duplicate login or email")

// Filter holds optional equality filters for FindFirst. Empty fields
// contribute no clause; provided fields are combined with OR.
type Filter struct {
	Name  string
	Login string
	Email string
}

// Empty reports whether no filter field is set.
func (f Filter) Empty() bool {
	return f.Name == "" && f.Login == "" && f.Email == ""
}

// Repository defines persistence for users. Lookups return (nil, nil) for
// missing rows; errors are database failures only.
type Repository interface {
	List(ctx context.Context, limit int) ([]*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// FindFirst returns the first user matching any provided filter field,
	// or nil when the filter is empty or nothing matches.
	FindFirst(ctx context.Context, f Filter) (*domain.User, error)
	// FindByLoginOrEmail returns a user whose login or email equals the given
	// values, or nil if neither is taken.
	FindByLoginOrEmail(ctx context.Context, login, email string) (*domain.User, error)
	// Create inserts the user and returns it with the store-assigned ID.
	// Returns ErrDuplicate when login or email is already taken.
	Create(ctx context.Context, nu domain.NewUser) (*domain.User, error)
}

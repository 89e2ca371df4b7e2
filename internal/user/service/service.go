// Package service holds the user creation pipeline and lookup dispatch.
//
// Create runs its stages in strict order: payload shape, schema validation,
// uniqueness pre-check, insert. Each stage short-circuits, so the store is
// never consulted for a payload already known to be invalid. The insert still
// maps a store-level unique violation to ErrConflict: two concurrent creates
// can both pass the pre-check, and the table's unique constraints are the
// backstop for that race.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"user-registry/internal/config"
	"user-registry/internal/user/domain"
	"user-registry/internal/user/repository"
)

var (
	// ErrNotFound means the request was well-formed but no user matched.
	ErrNotFound = errors.New("user not found")
	// ErrConflict means the login or email is already taken, detected by the
	// pre-check or surfaced from the store on insert.
	ErrConflict = errors.New("login or email already taken")
)

// MalformedError means the caller supplied an unusable request shape:
// wrong payload keys, a non-numeric id, or an empty query filter.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string { return e.Reason }

// ValidationError carries the per-field failures of schema validation,
// ordered by schema field declaration.
type ValidationError struct {
	Fields []domain.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// Service orchestrates validation and persistence for users. It holds no
// mutable state across calls; the repository is the only collaborator.
type Service struct {
	repo        repository.Repository
	shapePolicy config.ShapePolicy
	listLimit   int
}

// New returns a Service using repo for persistence. shapePolicy selects the
// payload-shape check for Create; listLimit caps List results.
func New(repo repository.Repository, shapePolicy config.ShapePolicy, listLimit int) *Service {
	return &Service{repo: repo, shapePolicy: shapePolicy, listLimit: listLimit}
}

// Create turns a raw payload into a persisted user or a precise rejection.
func (s *Service) Create(ctx context.Context, payload map[string]any) (*domain.User, error) {
	if err := s.checkShape(payload); err != nil {
		return nil, err
	}

	if fieldErrs := domain.CreateUserSchema.Validate(payload); fieldErrs != nil {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	nu := domain.NewUser{
		Name:     trimmed(payload, "name"),
		Login:    trimmed(payload, "login"),
		Email:    trimmed(payload, "email"),
		Password: trimmed(payload, "password"),
	}

	existing, err := s.repo.FindByLoginOrEmail(ctx, nu.Login, nu.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	u, err := s.repo.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return u, nil
}

// checkShape verifies the payload keys per the configured policy. Under
// "exact" the payload must hold exactly the schema's keys; under "required"
// every schema key must be present with a non-empty value, extras ignored.
func (s *Service) checkShape(payload map[string]any) error {
	fields := domain.CreateUserSchema.Fields()

	if s.shapePolicy == config.ShapePolicyExact && len(payload) != len(fields) {
		return &MalformedError{Reason: fmt.Sprintf("payload must contain exactly the keys %s", strings.Join(fields, ", "))}
	}
	for _, field := range fields {
		v, ok := payload[field]
		if !ok {
			return &MalformedError{Reason: "missing key " + field}
		}
		if s.shapePolicy == config.ShapePolicyRequired {
			if str, isStr := v.(string); isStr && strings.TrimSpace(str) == "" {
				return &MalformedError{Reason: "missing key " + field}
			}
			if v == nil {
				return &MalformedError{Reason: "missing key " + field}
			}
		}
	}
	return nil
}

// List returns up to the configured limit of users. An empty store yields an
// empty slice, not an error.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx, s.listLimit)
}

// GetByID resolves a user from a raw path identifier. A non-numeric id is a
// malformed request, distinct from a numeric id with no matching user.
func (s *Service) GetByID(ctx context.Context, rawID string) (*domain.User, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, &MalformedError{Reason: fmt.Sprintf("id %q is not numeric", rawID)}
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// GetByQuery resolves at most one user matching any of the provided filters.
// At least one filter must be supplied. Which user wins when several match is
// implementation-defined; the repository makes it stable by id order.
func (s *Service) GetByQuery(ctx context.Context, f repository.Filter) (*domain.User, error) {
	if f.Empty() {
		return nil, &MalformedError{Reason: "at least one of name, login, email must be supplied"}
	}
	u, err := s.repo.FindFirst(ctx, f)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func trimmed(payload map[string]any, key string) string {
	str, _ := payload[key].(string)
	return strings.TrimSpace(str)
}

package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"user-registry/internal/audit/domain"
	auditrepo "user-registry/internal/audit/repository"
)

// Logger writes audit trail events for user lifecycle actions.
// LogEvent is best-effort: failures are logged and do not affect the caller.
type Logger struct {
	repo auditrepo.Repository
}

// NewLogger returns a Logger that persists to repo. repo may be nil; then
// LogEvent is a no-op.
func NewLogger(repo auditrepo.Repository) *Logger {
	return &Logger{repo: repo}
}

// LogEvent writes one audit entry. Best-effort: errors are logged and not returned.
func (l *Logger) LogEvent(ctx context.Context, action, subject, metadata string) {
	if l == nil || l.repo == nil {
		return
	}
	e := &domain.Event{
		ID:        uuid.New().String(),
		Action:    action,
		Subject:   subject,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.repo.Create(ctx, e); err != nil {
		log.Printf("audit: failed to log event %s/%s: %v", action, subject, err)
	}
}

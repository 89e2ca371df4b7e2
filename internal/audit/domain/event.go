package domain

import "time"

// Event is one audit trail entry for a user lifecycle action.
type Event struct {
	ID        string
	Action    string
	Subject   string
	Metadata  string
	CreatedAt time.Time
}

// Actions recorded by this service.
const (
	ActionUserCreated = "user_created"
)

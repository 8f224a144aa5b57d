package domain

import (
	"context"
	"time"
)

// EventInvitation represents an email invited to fill in an event's grid.
// swagger:model EventInvitation
type EventInvitation struct {
	ID      int       `json:"id"`
	EventID int       `json:"event_id"`
	Email   string    `json:"email"`
	SentAt  time.Time `json:"sent_at"`
}

// EventInvitationRepository defines storage operations for event invitations.
type EventInvitationRepository interface {
	Create(ctx context.Context, inv *EventInvitation) error
	ListByEventID(ctx context.Context, eventID int) ([]*EventInvitation, error)
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an append-only record attached to a ticket
type Event struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	TicketID  uuid.UUID  `json:"ticketId" db:"ticket_id"`
	Type      EventType  `json:"type" db:"type"`
	ActorID   *uuid.UUID `json:"actorId,omitempty" db:"actor_id"`
	Payload   string     `json:"payload" db:"payload"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// EventInput represents input for appending an event
type EventInput struct {
	Type    EventType  `json:"type" validate:"required,oneof=created status_changed assigned comment"`
	ActorID *uuid.UUID `json:"actorId,omitempty"`
	Payload string     `json:"payload"`
}

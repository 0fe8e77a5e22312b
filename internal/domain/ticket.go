package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ticket represents a support ticket
type Ticket struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Status      TicketStatus   `json:"status" db:"status"`
	Priority    TicketPriority `json:"priority" db:"priority"`
	ReporterID  *uuid.UUID     `json:"reporterId,omitempty" db:"reporter_id"`
	AssigneeID  *uuid.UUID     `json:"assigneeId,omitempty" db:"assignee_id"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// TicketInput represents input for creating a ticket
type TicketInput struct {
	Title       string         `json:"title" validate:"required,max=255"`
	Description string         `json:"description"`
	Priority    TicketPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	ReporterID  *uuid.UUID     `json:"reporterId,omitempty"`
	AssigneeID  *uuid.UUID     `json:"assigneeId,omitempty"`
}

// TicketStatusInput represents input for moving a ticket to a new status
type TicketStatusInput struct {
	Status TicketStatus `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

// TicketFilter represents filter options for listing tickets
type TicketFilter struct {
	Status     *TicketStatus
	AssigneeID *uuid.UUID
	Limit      int
	Offset     int
}

package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/schema"
)

// EventRepository handles ticket events
type EventRepository struct {
	base
}

// NewEventRepository creates an event repository bound to db and md
func NewEventRepository(ctx context.Context, db *database.StorageDB, md *schema.Metadata, role repository.Role) (*EventRepository, error) {
	b, err := newBase(ctx, db, md, schema.EventsTable(), role)
	if err != nil {
		return nil, err
	}
	return &EventRepository{base: b}, nil
}

// Append records a new event for a ticket
func (r *EventRepository) Append(ctx context.Context, ticketID uuid.UUID, input *domain.EventInput) (_ *domain.Event, err error) {
	if err := r.requireWriter(); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid event type %q", input.Type))
	}
	defer r.observe("insert", time.Now(), &err)

	event := &domain.Event{
		ID:        uuid.New(),
		TicketID:  ticketID,
		Type:      input.Type,
		ActorID:   input.ActorID,
		Payload:   input.Payload,
		CreatedAt: now(),
	}

	query := `
		INSERT INTO events (id, ticket_id, type, actor_id, payload, created_at)
		VALUES (:id, :ticket_id, :type, :actor_id, :payload, :created_at)
	`
	if _, err := r.db.DB.NamedExecContext(ctx, query, event); err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	return event, nil
}

// Get retrieves an event by ID
func (r *EventRepository) Get(ctx context.Context, id uuid.UUID) (_ *domain.Event, err error) {
	defer r.observe("select", time.Now(), &err)

	query := r.db.Rebind(`SELECT ` + r.columns() + ` FROM events WHERE id = ?`)

	var event domain.Event
	if err := r.db.DB.GetContext(ctx, &event, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("event")
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

// ListByTicket returns a ticket's events oldest first
func (r *EventRepository) ListByTicket(ctx context.Context, ticketID uuid.UUID, limit, offset int) (_ []domain.Event, err error) {
	defer r.observe("select", time.Now(), &err)

	query := r.db.Rebind(`
		SELECT ` + r.columns() + `
		FROM events
		WHERE ticket_id = ?
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?
	`)

	events := []domain.Event{}
	if err := r.db.DB.SelectContext(ctx, &events, query, ticketID, clampLimit(limit), max(offset, 0)); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

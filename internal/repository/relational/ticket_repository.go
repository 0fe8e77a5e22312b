package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/schema"
)

// TicketRepository handles ticket data operations
type TicketRepository struct {
	base
}

// NewTicketRepository creates a ticket repository bound to db and md
func NewTicketRepository(ctx context.Context, db *database.StorageDB, md *schema.Metadata, role repository.Role) (*TicketRepository, error) {
	b, err := newBase(ctx, db, md, schema.TicketsTable(), role)
	if err != nil {
		return nil, err
	}
	return &TicketRepository{base: b}, nil
}

// Create creates a new open ticket
func (r *TicketRepository) Create(ctx context.Context, input *domain.TicketInput) (_ *domain.Ticket, err error) {
	if err := r.requireWriter(); err != nil {
		return nil, err
	}
	defer r.observe("insert", time.Now(), &err)

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid priority %q", priority))
	}

	ts := now()
	ticket := &domain.Ticket{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		ReporterID:  input.ReporterID,
		AssigneeID:  input.AssigneeID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	query := `
		INSERT INTO tickets (id, title, description, status, priority, reporter_id, assignee_id, created_at, updated_at)
		VALUES (:id, :title, :description, :status, :priority, :reporter_id, :assignee_id, :created_at, :updated_at)
	`
	if _, err := r.db.DB.NamedExecContext(ctx, query, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return ticket, nil
}

// Get retrieves a ticket by ID
func (r *TicketRepository) Get(ctx context.Context, id uuid.UUID) (_ *domain.Ticket, err error) {
	defer r.observe("select", time.Now(), &err)

	query := r.db.Rebind(`SELECT ` + r.columns() + ` FROM tickets WHERE id = ?`)

	var ticket domain.Ticket
	if err := r.db.DB.GetContext(ctx, &ticket, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("ticket")
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return &ticket, nil
}

// List returns tickets matching filter, newest first
func (r *TicketRepository) List(ctx context.Context, filter *domain.TicketFilter) (_ []domain.Ticket, err error) {
	defer r.observe("select", time.Now(), &err)

	var conditions []string
	var args []any

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.AssigneeID != nil {
		conditions = append(conditions, "assignee_id = ?")
		args = append(args, *filter.AssigneeID)
	}

	query := `SELECT ` + r.columns() + ` FROM tickets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?"
	args = append(args, clampLimit(filter.Limit), max(filter.Offset, 0))

	tickets := []domain.Ticket{}
	if err := r.db.DB.SelectContext(ctx, &tickets, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return tickets, nil
}

// UpdateStatus moves a ticket to status and returns the updated ticket
func (r *TicketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TicketStatus) (_ *domain.Ticket, err error) {
	if err := r.requireWriter(); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid status %q", status))
	}

	defer r.observe("update", time.Now(), &err)

	var ticket domain.Ticket
	err = database.Transaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := tx.Rebind(`UPDATE tickets SET status = ?, updated_at = ? WHERE id = ?`)
		result, err := tx.ExecContext(ctx, query, status, now(), id)
		if err != nil {
			return fmt.Errorf("failed to update ticket status: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update ticket status: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("ticket")
		}

		query = tx.Rebind(`SELECT ` + r.columns() + ` FROM tickets WHERE id = ?`)
		if err := tx.GetContext(ctx, &ticket, query, id); err != nil {
			return fmt.Errorf("failed to get ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}

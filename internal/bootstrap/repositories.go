package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/appctx"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository/relational"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/schema"
)

// Roles given to each repository. Events are only read through this
// service, so they get the reader role.
const (
	EventsRole  = repository.RoleReader
	TicketsRole = repository.RoleWriter
	UsersRole   = repository.RoleWriter
)

// NewRegistry builds the events, tickets and users repositories, in that
// order, on one storage handle and publishes them with logger.
func NewRegistry(ctx context.Context, logger *zap.Logger, db *database.StorageDB, md *schema.Metadata) (*appctx.Context, error) {
	events, err := relational.NewEventRepository(ctx, db, md, EventsRole)
	if err != nil {
		return nil, fmt.Errorf("failed to create events repository: %w", err)
	}

	tickets, err := relational.NewTicketRepository(ctx, db, md, TicketsRole)
	if err != nil {
		return nil, fmt.Errorf("failed to create tickets repository: %w", err)
	}

	users, err := relational.NewUserRepository(ctx, db, md, UsersRole)
	if err != nil {
		return nil, fmt.Errorf("failed to create users repository: %w", err)
	}

	logger.Debug("repositories wired",
		zap.Stringer("events", events.Role()),
		zap.Stringer("tickets", tickets.Role()),
		zap.Stringer("users", users.Role()),
	)

	return appctx.New(logger, events, tickets, users)
}

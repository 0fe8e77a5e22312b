// Package appctx holds the components published by bootstrap for the
// request layer. A Context is built once and never mutated.
package appctx

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository/relational"
)

// Published component names
const (
	KeyLogger  = "logger"
	KeyEvents  = "db.events"
	KeyTickets = "db.tickets"
	KeyUsers   = "db.users"
)

// Context is the name-keyed set of components available to handlers
type Context struct {
	logger  *zap.Logger
	events  *relational.EventRepository
	tickets *relational.TicketRepository
	users   *relational.UserRepository
}

// New creates a Context. Every component is required.
func New(
	logger *zap.Logger,
	events *relational.EventRepository,
	tickets *relational.TicketRepository,
	users *relational.UserRepository,
) (*Context, error) {
	switch {
	case logger == nil:
		return nil, errors.New("appctx: logger is required")
	case events == nil:
		return nil, errors.New("appctx: events repository is required")
	case tickets == nil:
		return nil, errors.New("appctx: tickets repository is required")
	case users == nil:
		return nil, errors.New("appctx: users repository is required")
	}

	return &Context{
		logger:  logger,
		events:  events,
		tickets: tickets,
		users:   users,
	}, nil
}

// Lookup returns the component published under name
func (c *Context) Lookup(name string) (any, bool) {
	switch name {
	case KeyLogger:
		return c.logger, true
	case KeyEvents:
		return c.events, true
	case KeyTickets:
		return c.tickets, true
	case KeyUsers:
		return c.users, true
	}
	return nil, false
}

// Keys returns the published names in sorted order
func (c *Context) Keys() []string {
	keys := []string{KeyLogger, KeyEvents, KeyTickets, KeyUsers}
	sort.Strings(keys)
	return keys
}

// Logger returns the component published under KeyLogger
func (c *Context) Logger() *zap.Logger {
	return c.logger
}

// Events returns the component published under KeyEvents
func (c *Context) Events() *relational.EventRepository {
	return c.events
}

// Tickets returns the component published under KeyTickets
func (c *Context) Tickets() *relational.TicketRepository {
	return c.tickets
}

// Users returns the component published under KeyUsers
func (c *Context) Users() *relational.UserRepository {
	return c.users
}

package appctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository/relational"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/schema"
)

func newRepos(t *testing.T) (*relational.EventRepository, *relational.TicketRepository, *relational.UserRepository) {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	md := schema.NewMetadata(db)

	events, err := relational.NewEventRepository(ctx, db, md, repository.RoleReader)
	require.NoError(t, err)
	tickets, err := relational.NewTicketRepository(ctx, db, md, repository.RoleWriter)
	require.NoError(t, err)
	users, err := relational.NewUserRepository(ctx, db, md, repository.RoleWriter)
	require.NoError(t, err)

	return events, tickets, users
}

func TestNew(t *testing.T) {
	logger := zaptest.NewLogger(t)
	events, tickets, users := newRepos(t)

	c, err := New(logger, events, tickets, users)
	require.NoError(t, err)

	assert.Equal(t, []string{KeyEvents, KeyTickets, KeyUsers, KeyLogger}, c.Keys())
	assert.Same(t, logger, c.Logger())
	assert.Same(t, events, c.Events())
	assert.Same(t, tickets, c.Tickets())
	assert.Same(t, users, c.Users())
}

func TestNew_MissingComponent(t *testing.T) {
	logger := zaptest.NewLogger(t)
	events, tickets, users := newRepos(t)

	_, err := New(nil, events, tickets, users)
	assert.Error(t, err)
	_, err = New(logger, nil, tickets, users)
	assert.Error(t, err)
	_, err = New(logger, events, nil, users)
	assert.Error(t, err)
	_, err = New(logger, events, tickets, nil)
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	logger := zaptest.NewLogger(t)
	events, tickets, users := newRepos(t)
	c, err := New(logger, events, tickets, users)
	require.NoError(t, err)

	for _, key := range c.Keys() {
		v, ok := c.Lookup(key)
		assert.True(t, ok, key)
		assert.NotNil(t, v, key)
	}

	v, ok := c.Lookup(KeyTickets)
	require.True(t, ok)
	assert.Same(t, tickets, v)

	_, ok = c.Lookup("db.comments")
	assert.False(t, ok)
}

package relational

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository"
)

func TestEventRepository_ReaderRejectsAppend(t *testing.T) {
	db, md := getTestDB(t)
	ctx := context.Background()

	repo, err := NewEventRepository(ctx, db, md, repository.RoleReader)
	require.NoError(t, err)

	event, err := repo.Append(ctx, uuid.New(), &domain.EventInput{Type: domain.EventTypeComment, Payload: "hi"})
	assert.Nil(t, event)
	assert.True(t, apperrors.IsReadOnly(err))

	var count int
	require.NoError(t, db.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM events"))
	assert.Equal(t, 0, count)
}

func TestEventRepository_AppendAndList(t *testing.T) {
	db, md := getTestDB(t)
	ctx := context.Background()

	writer, err := NewEventRepository(ctx, db, md, repository.RoleWriter)
	require.NoError(t, err)
	reader, err := NewEventRepository(ctx, db, md, repository.RoleReader)
	require.NoError(t, err)

	ticketID := uuid.New()
	actor := uuid.New()

	first, err := writer.Append(ctx, ticketID, &domain.EventInput{Type: domain.EventTypeCreated, ActorID: &actor, Payload: "{}"})
	require.NoError(t, err)
	second, err := writer.Append(ctx, ticketID, &domain.EventInput{Type: domain.EventTypeComment, Payload: "looking"})
	require.NoError(t, err)
	_, err = writer.Append(ctx, uuid.New(), &domain.EventInput{Type: domain.EventTypeComment, Payload: "other"})
	require.NoError(t, err)

	t.Run("get by id", func(t *testing.T) {
		got, err := reader.Get(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, ticketID, got.TicketID)
		assert.Equal(t, domain.EventTypeCreated, got.Type)
		require.NotNil(t, got.ActorID)
		assert.Equal(t, actor, *got.ActorID)
	})

	t.Run("list by ticket", func(t *testing.T) {
		events, err := reader.ListByTicket(ctx, ticketID, 0, 0)
		require.NoError(t, err)
		require.Len(t, events, 2)
		ids := []uuid.UUID{events[0].ID, events[1].ID}
		assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, ids)
		assert.False(t, events[1].CreatedAt.Before(events[0].CreatedAt))
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		events, err := reader.ListByTicket(ctx, uuid.New(), 10, 0)
		require.NoError(t, err)
		assert.NotNil(t, events)
		assert.Empty(t, events)
	})

	t.Run("missing event", func(t *testing.T) {
		_, err := reader.Get(ctx, uuid.New())
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := writer.Append(ctx, ticketID, &domain.EventInput{Type: "bogus"})
		assert.True(t, apperrors.IsValidation(err))
	})
}

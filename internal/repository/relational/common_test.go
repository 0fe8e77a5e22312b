package relational

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/schema"
)

// getTestDB returns an in-memory storage handle with empty metadata bound to it
func getTestDB(t *testing.T) (*database.StorageDB, *schema.Metadata) {
	t.Helper()

	db, err := database.NewMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, schema.NewMetadata(db)
}

package schema

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/logger"
)

// Metadata is the set of tables declared against one StorageDB.
// A Metadata is bound to exactly one StorageDB for its whole life.
type Metadata struct {
	db *database.StorageDB

	mu      sync.RWMutex
	tables  map[string]Table
	created map[string]bool
	order   []string
}

// NewMetadata returns an empty Metadata bound to db
func NewMetadata(db *database.StorageDB) *Metadata {
	return &Metadata{
		db:      db,
		tables:  make(map[string]Table),
		created: make(map[string]bool),
	}
}

// Bind returns the StorageDB the metadata describes
func (m *Metadata) Bind() *database.StorageDB {
	return m.db
}

// Declare adds t to the metadata. Declaring the same name twice is an error.
func (m *Metadata) Declare(t Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[t.Name]; ok {
		return fmt.Errorf("table %s already declared", t.Name)
	}
	m.tables[t.Name] = t
	m.order = append(m.order, t.Name)
	return nil
}

// Lookup returns the declaration for name
func (m *Metadata) Lookup(name string) (Table, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[name]
	return t, ok
}

// Tables returns the declarations in the order they were declared
func (m *Metadata) Tables() []Table {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Table, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.tables[name])
	}
	return out
}

// CreateAll creates every declared table that does not exist yet
func (m *Metadata) CreateAll(ctx context.Context) error {
	for _, t := range m.Tables() {
		if err := m.create(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// Ensure returns the declaration for t.Name, declaring and creating t first
// when the metadata does not know it yet
func (m *Metadata) Ensure(ctx context.Context, t Table) (Table, error) {
	if existing, ok := m.Lookup(t.Name); ok {
		return existing, m.create(ctx, existing)
	}
	if err := m.Declare(t); err != nil {
		return Table{}, err
	}
	return t, m.create(ctx, t)
}

func (m *Metadata) create(ctx context.Context, t Table) error {
	m.mu.RLock()
	done := m.created[t.Name]
	m.mu.RUnlock()
	if done {
		return nil
	}

	stmt, err := t.CreateStatement(m.db.Dialect)
	if err != nil {
		return err
	}
	if _, err := m.db.DB.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", t.Name, err)
	}

	m.mu.Lock()
	m.created[t.Name] = true
	m.mu.Unlock()

	logger.Debug("table ready",
		zap.String("table", t.Name),
		zap.String("dialect", string(m.db.Dialect)),
	)
	return nil
}

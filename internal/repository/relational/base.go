package relational

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/metrics"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/schema"
)

// base holds what every repository binds: one storage handle, the table
// declaration taken from its metadata, and a role
type base struct {
	db    *database.StorageDB
	table schema.Table
	role  repository.Role
}

func newBase(ctx context.Context, db *database.StorageDB, md *schema.Metadata, decl schema.Table, role repository.Role) (base, error) {
	if db == nil || md == nil {
		return base{}, fmt.Errorf("%s repository requires storage and metadata", decl.Name)
	}
	if md.Bind() != db {
		return base{}, fmt.Errorf("%s repository: metadata is bound to a different storage handle", decl.Name)
	}
	if !role.IsValid() {
		return base{}, fmt.Errorf("%s repository: invalid role %s", decl.Name, role)
	}

	table, err := md.Ensure(ctx, decl)
	if err != nil {
		return base{}, fmt.Errorf("failed to prepare %s table: %w", decl.Name, err)
	}

	return base{db: db, table: table, role: role}, nil
}

// Role returns the access role fixed at construction
func (b base) Role() repository.Role {
	return b.role
}

// requireWriter gates every mutating method
func (b base) requireWriter() error {
	if !b.role.CanWrite() {
		return apperrors.ReadOnly(b.table.Name)
	}
	return nil
}

func (b base) columns() string {
	return strings.Join(b.table.ColumnNames(), ", ")
}

// observe records query metrics; call as defer b.observe("select", time.Now(), &err)
func (b base) observe(operation string, start time.Time, err *error) {
	metrics.RecordDBQuery(string(b.db.Dialect), b.table.Name+"."+operation, time.Since(start))
	if err != nil && *err != nil && !apperrors.IsAppError(*err) {
		metrics.RecordDBError(string(b.db.Dialect), b.table.Name+"."+operation)
	}
}

func now() time.Time {
	// DATETIME(6) keeps microseconds
	return time.Now().UTC().Truncate(time.Microsecond)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 50
	}
	return limit
}

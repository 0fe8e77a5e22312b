package schema

import (
	"fmt"
	"strings"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
)

// ColumnType is a portable column type resolved per dialect at DDL time
type ColumnType int

const (
	TypeID ColumnType = iota
	TypeString
	TypeText
	TypeInteger
	TypeTimestamp
)

// Column describes one column of a table
type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	NotNull    bool
	Unique     bool
}

// Table is the declaration of a persisted table
type Table struct {
	Name    string
	Columns []Column
}

// ColumnNames returns the column names in declaration order
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether the table declares column
func (t Table) Has(column string) bool {
	for _, c := range t.Columns {
		if c.Name == column {
			return true
		}
	}
	return false
}

// CreateStatement renders CREATE TABLE IF NOT EXISTS for dialect
func (t Table) CreateStatement(dialect database.Dialect) (string, error) {
	if t.Name == "" {
		return "", fmt.Errorf("table has no name")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("table %s has no columns", t.Name)
	}

	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		typ, err := sqlType(dialect, c.Type)
		if err != nil {
			return "", fmt.Errorf("table %s column %s: %w", t.Name, c.Name, err)
		}
		def := c.Name + " " + typ
		if c.PrimaryKey {
			def += " PRIMARY KEY"
		}
		if c.NotNull && !c.PrimaryKey {
			def += " NOT NULL"
		}
		if c.Unique {
			def += " UNIQUE"
		}
		defs = append(defs, def)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.Name, strings.Join(defs, ",\n\t")), nil
}

func sqlType(dialect database.Dialect, typ ColumnType) (string, error) {
	switch typ {
	case TypeID:
		return "VARCHAR(36)", nil
	case TypeString:
		return "VARCHAR(255)", nil
	case TypeText:
		return "TEXT", nil
	case TypeInteger:
		if dialect == database.DialectPostgres {
			return "BIGINT", nil
		}
		return "INTEGER", nil
	case TypeTimestamp:
		switch dialect {
		case database.DialectMySQL:
			return "DATETIME(6)", nil
		case database.DialectPostgres:
			return "TIMESTAMPTZ", nil
		default:
			return "TIMESTAMP", nil
		}
	}
	return "", fmt.Errorf("unknown column type %d", typ)
}

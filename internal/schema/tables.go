package schema

// Table names
const (
	EventsTableName  = "events"
	TicketsTableName = "tickets"
	UsersTableName   = "users"
)

// UsersTable declares the users table
func UsersTable() Table {
	return Table{
		Name: UsersTableName,
		Columns: []Column{
			{Name: "id", Type: TypeID, PrimaryKey: true},
			{Name: "email", Type: TypeString, NotNull: true, Unique: true},
			{Name: "name", Type: TypeString, NotNull: true},
			{Name: "password_hash", Type: TypeString, NotNull: true},
			{Name: "created_at", Type: TypeTimestamp, NotNull: true},
			{Name: "updated_at", Type: TypeTimestamp, NotNull: true},
		},
	}
}

// TicketsTable declares the tickets table
func TicketsTable() Table {
	return Table{
		Name: TicketsTableName,
		Columns: []Column{
			{Name: "id", Type: TypeID, PrimaryKey: true},
			{Name: "title", Type: TypeString, NotNull: true},
			{Name: "description", Type: TypeText, NotNull: true},
			{Name: "status", Type: TypeString, NotNull: true},
			{Name: "priority", Type: TypeString, NotNull: true},
			{Name: "reporter_id", Type: TypeID},
			{Name: "assignee_id", Type: TypeID},
			{Name: "created_at", Type: TypeTimestamp, NotNull: true},
			{Name: "updated_at", Type: TypeTimestamp, NotNull: true},
		},
	}
}

// EventsTable declares the append-only ticket events table
func EventsTable() Table {
	return Table{
		Name: EventsTableName,
		Columns: []Column{
			{Name: "id", Type: TypeID, PrimaryKey: true},
			{Name: "ticket_id", Type: TypeID, NotNull: true},
			{Name: "type", Type: TypeString, NotNull: true},
			{Name: "actor_id", Type: TypeID},
			{Name: "payload", Type: TypeText, NotNull: true},
			{Name: "created_at", Type: TypeTimestamp, NotNull: true},
		},
	}
}

// KnownTables returns every table the service persists
func KnownTables() []Table {
	return []Table{UsersTable(), TicketsTable(), EventsTable()}
}

// DeclareKnown declares every known table on m
func DeclareKnown(m *Metadata) error {
	for _, t := range KnownTables() {
		if err := m.Declare(t); err != nil {
			return err
		}
	}
	return nil
}

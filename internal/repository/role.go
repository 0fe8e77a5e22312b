package repository

import "fmt"

// Role is the access capability of a repository instance.
// The zero value is not a valid role.
type Role int

const (
	RoleReader Role = iota + 1
	RoleWriter
)

// IsValid reports whether r is reader or writer
func (r Role) IsValid() bool {
	return r == RoleReader || r == RoleWriter
}

// CanWrite reports whether r permits mutating operations
func (r Role) CanWrite() bool {
	return r == RoleWriter
}

func (r Role) String() string {
	switch r {
	case RoleReader:
		return "reader"
	case RoleWriter:
		return "writer"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

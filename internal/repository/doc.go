// Package repository contains data access implementations for the ticketing service.
//
// Repositories provide persistence operations for domain entities on top of a
// single shared SQL storage handle.
//
// # Roles
//
// Every repository instance carries a Role fixed at construction. A reader
// instance rejects each mutating call with a READ_ONLY error before any SQL runs;
// the gate sits in the method, not in how the instance was obtained.
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use.
// Connection pooling is handled by database/sql.
package repository

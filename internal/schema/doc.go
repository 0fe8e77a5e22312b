// Package schema declares the persisted tables and binds them to a storage handle.
//
// A Metadata starts empty for in-memory storage; each repository then ensures its
// own table on first use. For networked storage the bootstrap declares every known
// table up front and creates the missing ones before any repository is built.
package schema

// Package domain contains the persisted entities of the ticketing service.
//
// # Key Entities
//
//   - User: a person who reports or works tickets
//   - Ticket: a support request with a status and priority
//   - Event: an append-only record of something that happened to a ticket
//
// # Naming Conventions
//
// Types ending in "Input" are used for create/update operations.
// Types ending in "Filter" are used for query operations.
package domain

// Package handler contains the HTTP handlers of the ticketing service.
//
// Handlers receive the published appctx.Context through their constructors
// and never look components up from global state. Repository errors are
// mapped to status codes through apperrors.AppError.
//
// # Routes
//
//   - /health, /livez, /readyz, /version: health checks
//   - /api/tickets: tickets and their events
//   - /api/users: users
//
// All handlers are safe for concurrent use.
package handler

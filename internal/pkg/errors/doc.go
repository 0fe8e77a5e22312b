// Package errors provides application error types for the ticketing service.
//
// This package defines:
//   - AppError type with error classification
//   - Error constructors for common error types
//   - Error type checking helpers
//   - HTTP status code mapping
//
// # Error Types
//
//   - NotFound: Resource does not exist (404)
//   - Validation: Invalid input data (400)
//   - ReadOnly: Mutation through a reader-role repository (403)
//   - Internal: Unexpected server error (500)
//
// # Bootstrap Errors
//
// Startup has three failure kinds, all fatal:
//
//   - UnknownDeploymentStage: STAGE is not TEST, STAGING or PRODUCTION
//   - InvalidEnvironmentValue: a numeric variable holds a non-numeric value
//   - BackendConnectionFailure: storage or cache could not be reached
//
// # Usage
//
// Create errors using constructor functions:
//
//	return apperrors.NotFound("ticket")
//	return apperrors.InvalidEnvironmentValue("DB_PORT", raw)
//
// Check error types:
//
//	if apperrors.IsBackendConnectionFailure(err) {
//	    // Abort startup
//	}
//
// # Error Wrapping
//
// Errors support wrapping with fmt.Errorf:
//
//	return fmt.Errorf("bootstrap failed: %w", apperrors.UnknownDeploymentStage(raw))
package errors

package errs

import "errors"

// Domain-specific sentinel errors for the usecase layers
var (
	// Listing errors
	ErrListingNotFound = errors.New("listing not found")
	ErrNoActiveModes   = errors.New("listing has no bookable charter mode")

	// Quote errors
	ErrModeUnavailable = errors.New("charter mode unavailable")
	ErrInvalidRange    = errors.New("invalid charter range")

	// Lead errors
	ErrLeadNotFound     = errors.New("lead not found")
	ErrStatusTransition = errors.New("lead status transition not allowed")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

package errors

import "errors"

// Error taxonomy for the Project Sync client core
var (
	// Transport errors
	ErrTransportFailure = errors.New("backend unreachable")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResponse    = errors.New("invalid response from backend")
	ErrUnknownRole        = errors.New("unknown role")
	ErrNotLoggedIn        = errors.New("not logged in")

	// Authorization errors
	ErrGuardDenied = errors.New("insufficient role for route")

	// Session errors
	ErrOperationInFlight = errors.New("another session operation is in progress")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
)

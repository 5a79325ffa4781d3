// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"gnotes/internal/editor"
	"gnotes/internal/service"
	"gnotes/internal/session"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown note, failed validation).
	UserError = 1

	// AuthError indicates missing, rejected or invalid credentials.
	AuthError = 2

	// BackendError indicates the backend answered with an error.
	BackendError = 3

	// TransportError indicates the backend could not be reached.
	TransportError = 4
)

// For classifies err into an exit code. nil maps to Success.
func For(err error) int {
	if err == nil {
		return Success
	}

	var vErr *editor.ValidationError
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, session.ErrMissingFields),
		errors.Is(err, session.ErrPasswordTooShort):
		return UserError
	case errors.Is(err, session.ErrInvalidCredentials),
		errors.Is(err, service.ErrNoToken):
		return AuthError
	case service.IsTransport(err):
		return TransportError
	}

	if apiErr, ok := service.AsAPIError(err); ok {
		if apiErr.IsUnauthorized() {
			return AuthError
		}
		return BackendError
	}
	return UserError
}

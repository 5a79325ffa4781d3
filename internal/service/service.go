// Package service defines the backend-agnostic interface for note operations.
package service

import "context"

// Service defines the interface for notes backend operations.
// All REST calls go through this interface.
// Commands and the core state packages never import net/http directly.
type Service interface {
	// Login exchanges credentials for an opaque token.
	Login(ctx context.Context, creds Credentials) (string, error)

	// Register creates a new account. It does not authenticate.
	Register(ctx context.Context, creds Credentials) error

	// Logout invalidates the token on the backend.
	// Callers treat failures as non-fatal.
	Logout(ctx context.Context, token string) error

	// ListNotes returns the user's notes filtered by query.
	// An empty query returns all notes.
	// Results are in API order (no client-side sorting).
	ListNotes(ctx context.Context, token, query string) ([]Note, error)

	// CreateNote creates a note and returns the backend representation.
	CreateNote(ctx context.Context, token string, draft Draft) (Note, error)

	// UpdateNote replaces the title and content of an existing note.
	UpdateNote(ctx context.Context, token string, id int, draft Draft) (Note, error)

	// DeleteNote deletes a note by ID.
	DeleteNote(ctx context.Context, token string, id int) error
}

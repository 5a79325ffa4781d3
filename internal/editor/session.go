// Package editor implements the create/edit form for a single note.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"gnotes/internal/service"
)

// Form field names accepted by UpdateField.
const (
	FieldTitle   = "title"
	FieldContent = "content"
)

var (
	// ErrNotOpen is returned by Submit when no form is open.
	ErrNotOpen = errors.New("no note is being edited")

	// ErrSubmitting is returned by Submit while a save is in flight.
	ErrSubmitting = errors.New("save already in progress")
)

// Mode says what the form is doing.
type Mode int

const (
	Closed Mode = iota
	Creating
	Editing
)

// SubmitStatus is the state of the last save attempt.
type SubmitStatus int

const (
	SubmitIdle SubmitStatus = iota
	Submitting
	SubmitFailed
)

// ValidationError is a local field check that failed before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// SaveError is a failed save. Message is what the user sees.
type SaveError struct {
	Message string
	Err     error
}

func (e *SaveError) Error() string { return e.Message }

func (e *SaveError) Unwrap() error { return e.Err }

// State is a copy of the form. Err is the last save failure; ValidationErr
// tracks the title and is recomputed on every title change.
type State struct {
	Mode          Mode
	NoteID        int
	Title         string
	Content       string
	Status        SubmitStatus
	Err           string
	ValidationErr string
}

// Open reports whether a form is showing.
func (s State) Open() bool { return s.Mode != Closed }

// Session is the form state machine. onSaved runs after every successful save.
type Session struct {
	svc     service.Service
	log     *slog.Logger
	onSaved func(context.Context, service.Note)

	mu    sync.Mutex
	state State
}

// New creates a closed Session.
func New(svc service.Service, onSaved func(context.Context, service.Note), log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Session{svc: svc, onSaved: onSaved, log: log}
}

// State returns a copy of the form.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OpenForCreate shows an empty form.
func (s *Session) OpenForCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Mode: Creating}
}

// OpenForEdit shows a form populated from note.
func (s *Session) OpenForEdit(note service.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{
		Mode:    Editing,
		NoteID:  note.ID,
		Title:   note.Title,
		Content: note.Content,
	}
}

// Close discards the form.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
}

// UpdateField sets the named field. Title changes are revalidated immediately.
func (s *Session) UpdateField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case FieldTitle:
		s.state.Title = value
		s.state.ValidationErr = ""
		if err := Validate(value); err != nil {
			s.state.ValidationErr = err.Error()
		}
	case FieldContent:
		s.state.Content = value
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// Validate checks the title rules.
func Validate(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return &ValidationError{Field: FieldTitle, Message: "Title is required"}
	}
	if utf8.RuneCountInString(trimmed) > service.MaxTitleLength {
		return &ValidationError{
			Field:   FieldTitle,
			Message: fmt.Sprintf("Title must be at most %d characters", service.MaxTitleLength),
		}
	}
	return nil
}

// Submit validates and saves the form. On success the form is closed and the
// saved note returned. On failure the fields are kept for another attempt.
func (s *Session) Submit(ctx context.Context, token string) (service.Note, error) {
	s.mu.Lock()
	st := s.state
	switch {
	case st.Mode == Closed:
		s.mu.Unlock()
		return service.Note{}, ErrNotOpen
	case st.Status == Submitting:
		s.mu.Unlock()
		return service.Note{}, ErrSubmitting
	}
	if err := Validate(st.Title); err != nil {
		s.state.Status = SubmitIdle
		s.state.Err = ""
		s.state.ValidationErr = err.Error()
		s.mu.Unlock()
		return service.Note{}, err
	}
	s.state.Status = Submitting
	s.state.Err = ""
	s.mu.Unlock()

	draft := service.Draft{Title: strings.TrimSpace(st.Title), Content: st.Content}
	var (
		note service.Note
		err  error
	)
	if st.Mode == Editing {
		note, err = s.svc.UpdateNote(ctx, token, st.NoteID, draft)
	} else {
		note, err = s.svc.CreateNote(ctx, token, draft)
	}

	if err != nil {
		saveErr := &SaveError{Message: "Failed to save note: " + reason(err), Err: err}
		s.mu.Lock()
		s.state.Status = SubmitFailed
		s.state.Err = saveErr.Message
		s.mu.Unlock()
		s.log.Debug("save failed", "mode", st.Mode, "id", st.NoteID, "err", err)
		return service.Note{}, saveErr
	}

	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()

	if s.onSaved != nil {
		s.onSaved(ctx, note)
	}
	return note, nil
}

func reason(err error) string {
	if apiErr, ok := service.AsAPIError(err); ok {
		if msg := apiErr.FieldError(FieldTitle); msg != "" {
			return msg
		}
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
	}
	return "Unknown error"
}

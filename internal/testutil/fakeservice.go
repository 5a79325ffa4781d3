// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"gnotes/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// It models the backend: accounts, issued tokens and per-user notes.
type FakeService struct {
	mu     sync.RWMutex
	users  map[string]string // username -> password
	tokens map[string]string // token -> username
	notes  []fakeNote
	nextID int
	seq    int
	calls  []Call
	now    func() time.Time

	// Error injection for testing
	LoginErr      error
	RegisterErr   error
	LogoutErr     error
	ListNotesErr  error
	CreateNoteErr error
	UpdateNoteErr error
	DeleteNoteErr error

	// ListNotesHook runs before ListNotes is served, outside the lock.
	// Tests use it to block or reorder overlapping fetches.
	ListNotesHook func(ctx context.Context, token, query string)

	// DeleteNoteHook runs before DeleteNote is served, outside the lock.
	DeleteNoteHook func(ctx context.Context, id int)
}

type fakeNote struct {
	owner string
	note  service.Note
}

// Call records one invocation of the fake.
type Call struct {
	Op    string
	Token string
	Query string
	ID    int
	Draft service.Draft
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		users:  make(map[string]string),
		tokens: make(map[string]string),
		nextID: 1,
		now:    func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) },
	}
}

// AddUser registers an account directly.
func (f *FakeService) AddUser(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = password
}

// IssueToken creates a valid token for username without a login call.
func (f *FakeService) IssueToken(username string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueLocked(username)
}

// AddNote stores a note owned by username and returns its ID.
func (f *FakeService) AddNote(username, title, content string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(username, service.Draft{Title: title, Content: content}).ID
}

// Calls returns a copy of the recorded calls.
func (f *FakeService) Calls() []Call {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns the recorded calls for one operation.
func (f *FakeService) CallsTo(op string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls forgets recorded calls.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, creds service.Credentials) (string, error) {
	f.record(Call{Op: "login"})
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if pw, ok := f.users[creds.Username]; !ok || pw != creds.Password {
		return "", &service.APIError{Status: http.StatusBadRequest, Detail: "Invalid credentials"}
	}
	return f.issueLocked(creds.Username), nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, creds service.Credentials) error {
	f.record(Call{Op: "register"})
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.users[creds.Username]; exists {
		return &service.APIError{
			Status: http.StatusBadRequest,
			Fields: map[string][]string{"username": {"A user with that username already exists."}},
		}
	}
	f.users[creds.Username] = creds.Password
	return nil
}

// Logout implements service.Service.
func (f *FakeService) Logout(ctx context.Context, token string) error {
	f.record(Call{Op: "logout", Token: token})
	if f.LogoutErr != nil {
		return f.LogoutErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

// ListNotes implements service.Service.
// Search matches title or content, case-insensitively.
func (f *FakeService) ListNotes(ctx context.Context, token, query string) ([]service.Note, error) {
	f.record(Call{Op: "list", Token: token, Query: query})
	if f.ListNotesHook != nil {
		f.ListNotesHook(ctx, token, query)
	}
	if f.ListNotesErr != nil {
		return nil, f.ListNotesErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	user, err := f.authLocked(token)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	result := []service.Note{}
	for _, n := range f.notes {
		if n.owner != user {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(n.note.Title), q) &&
			!strings.Contains(strings.ToLower(n.note.Content), q) {
			continue
		}
		result = append(result, n.note)
	}
	return result, nil
}

// CreateNote implements service.Service.
func (f *FakeService) CreateNote(ctx context.Context, token string, draft service.Draft) (service.Note, error) {
	f.record(Call{Op: "create", Token: token, Draft: draft})
	if f.CreateNoteErr != nil {
		return service.Note{}, f.CreateNoteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	user, err := f.authLocked(token)
	if err != nil {
		return service.Note{}, err
	}
	if err := validateDraft(draft); err != nil {
		return service.Note{}, err
	}
	return f.addLocked(user, draft), nil
}

// UpdateNote implements service.Service.
func (f *FakeService) UpdateNote(ctx context.Context, token string, id int, draft service.Draft) (service.Note, error) {
	f.record(Call{Op: "update", Token: token, ID: id, Draft: draft})
	if f.UpdateNoteErr != nil {
		return service.Note{}, f.UpdateNoteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	user, err := f.authLocked(token)
	if err != nil {
		return service.Note{}, err
	}
	if err := validateDraft(draft); err != nil {
		return service.Note{}, err
	}
	for i, n := range f.notes {
		if n.owner == user && n.note.ID == id {
			f.notes[i].note.Title = draft.Title
			f.notes[i].note.Content = draft.Content
			f.notes[i].note.UpdatedAt = f.now()
			return f.notes[i].note, nil
		}
	}
	return service.Note{}, notFound()
}

// DeleteNote implements service.Service.
func (f *FakeService) DeleteNote(ctx context.Context, token string, id int) error {
	f.record(Call{Op: "delete", Token: token, ID: id})
	if f.DeleteNoteHook != nil {
		f.DeleteNoteHook(ctx, id)
	}
	if f.DeleteNoteErr != nil {
		return f.DeleteNoteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	user, err := f.authLocked(token)
	if err != nil {
		return err
	}
	for i, n := range f.notes {
		if n.owner == user && n.note.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return notFound()
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *FakeService) issueLocked(username string) string {
	f.seq++
	token := fmt.Sprintf("tok-%s-%d", username, f.seq)
	f.tokens[token] = username
	return token
}

func (f *FakeService) addLocked(owner string, draft service.Draft) service.Note {
	note := service.Note{
		ID:        f.nextID,
		Title:     draft.Title,
		Content:   draft.Content,
		UpdatedAt: f.now(),
	}
	f.nextID++
	f.notes = append(f.notes, fakeNote{owner: owner, note: note})
	return note
}

func (f *FakeService) authLocked(token string) (string, error) {
	if token == "" {
		return "", service.ErrNoToken
	}
	user, ok := f.tokens[token]
	if !ok {
		return "", &service.APIError{Status: http.StatusUnauthorized, Detail: "Invalid token."}
	}
	return user, nil
}

func validateDraft(draft service.Draft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return &service.APIError{
			Status: http.StatusBadRequest,
			Fields: map[string][]string{"title": {"This field may not be blank."}},
		}
	}
	return nil
}

func notFound() error {
	return &service.APIError{Status: http.StatusNotFound, Detail: "Not found."}
}

// Package notes holds the client-side note collection and keeps it in sync
// with the backend.
package notes

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"gnotes/internal/service"
	"gnotes/internal/session"
)

// FetchErrorMessage is recorded when a list fetch fails.
const FetchErrorMessage = "Failed to fetch notes"

// Status is the loading state of the collection.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the store. It is safe to retain.
type Snapshot struct {
	Items   []service.Note
	Query   string
	Status  Status
	Err     string
	Pending []int
}

// IsPending reports whether a delete for id is in flight.
func (s Snapshot) IsPending(id int) bool {
	for _, p := range s.Pending {
		if p == id {
			return true
		}
	}
	return false
}

// Observer is notified after every state change.
type Observer func(Snapshot)

// Store is the note collection for the current session.
// Network calls run without holding the lock; overlapping refreshes are
// arbitrated by sequence number so the latest-issued request wins.
type Store struct {
	svc service.Service
	log *slog.Logger

	mu        sync.Mutex
	seq       uint64
	token     string
	authed    bool
	query     string
	items     []service.Note
	status    Status
	errMsg    string
	lastErr   error
	pending   map[int]struct{}
	observers []*Observer
}

// NewStore creates an idle Store.
func NewStore(svc service.Service, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{
		svc:     svc,
		log:     log,
		pending: make(map[int]struct{}),
	}
}

// OnChange registers fn. Observers run outside the store lock.
func (s *Store) OnChange(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := &fn
	s.observers = append(s.observers, o)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, cur := range s.observers {
			if cur == o {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Refresh fetches the notes matching query. A response that arrives after a
// newer Refresh or Clear is discarded and Refresh returns nil.
func (s *Store) Refresh(ctx context.Context, token, query string) error {
	s.mu.Lock()
	s.token = token
	s.authed = token != ""
	seq := s.beginLocked(query)
	s.mu.Unlock()
	s.notify()

	return s.fetch(ctx, seq, token, query)
}

// beginLocked starts a fetch for query and returns its sequence number.
func (s *Store) beginLocked(query string) uint64 {
	s.seq++
	s.query = query
	s.status = Loading
	return s.seq
}

func (s *Store) fetch(ctx context.Context, seq uint64, token, query string) error {
	items, err := s.svc.ListNotes(ctx, token, query)

	s.mu.Lock()
	if seq != s.seq {
		latest := s.seq
		s.mu.Unlock()
		s.log.Debug("discarding stale notes response", "seq", seq, "latest", latest, "query", query)
		return nil
	}
	s.lastErr = err
	if err != nil {
		s.items = nil
		s.status = Failed
		s.errMsg = FetchErrorMessage
	} else {
		s.items = items
		s.status = Ready
		s.errMsg = ""
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		return fmt.Errorf("fetch notes: %w", err)
	}
	return nil
}

// Clear empties the collection and invalidates any in-flight fetch.
func (s *Store) Clear() {
	s.mu.Lock()
	s.seq++
	s.token = ""
	s.authed = false
	s.items = nil
	s.status = Idle
	s.errMsg = ""
	s.lastErr = nil
	s.pending = make(map[int]struct{})
	s.mu.Unlock()
	s.notify()
}

// SetSession follows a session transition: authenticated fetches with the
// current query, anything else clears.
func (s *Store) SetSession(ctx context.Context, status session.Status, token string) error {
	if status != session.Authenticated || token == "" {
		s.Clear()
		return nil
	}
	s.mu.Lock()
	s.authed = true
	query := s.query
	s.mu.Unlock()
	return s.Refresh(ctx, token, query)
}

// SetQuery records the committed search query and refetches when authenticated.
func (s *Store) SetQuery(ctx context.Context, query string) error {
	s.mu.Lock()
	if !s.authed {
		s.query = query
		s.mu.Unlock()
		s.notify()
		return nil
	}
	token := s.token
	seq := s.beginLocked(query)
	s.mu.Unlock()
	s.notify()

	return s.fetch(ctx, seq, token, query)
}

// Invalidate refetches with the current token and query when authenticated.
func (s *Store) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	if !s.authed {
		s.mu.Unlock()
		return nil
	}
	token, query := s.token, s.query
	seq := s.beginLocked(query)
	s.mu.Unlock()
	s.notify()

	return s.fetch(ctx, seq, token, query)
}

// Delete removes a note on the backend, then refetches. The id is reported
// as pending while the call is in flight. On failure the items are untouched.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	if !s.authed {
		s.mu.Unlock()
		return service.ErrNoToken
	}
	token := s.token
	s.pending[id] = struct{}{}
	s.mu.Unlock()
	s.notify()

	err := s.svc.DeleteNote(ctx, token, id)

	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
	s.notify()

	if err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	if err := s.Invalidate(ctx); err != nil {
		s.log.Debug("refetch after delete failed", "err", err)
	}
	return nil
}

// LastError returns the error of the last applied fetch, if it failed.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Find returns the note with id from the current items.
func (s *Store) Find(id int) (service.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.items {
		if n.ID == id {
			return n, true
		}
	}
	return service.Note{}, false
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Items:  append([]service.Note(nil), s.items...),
		Query:  s.query,
		Status: s.status,
		Err:    s.errMsg,
	}
	for id := range s.pending {
		snap.Pending = append(snap.Pending, id)
	}
	sort.Ints(snap.Pending)
	return snap
}

func (s *Store) notify() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	observers := make([]Observer, len(s.observers))
	for i, o := range s.observers {
		observers[i] = *o
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

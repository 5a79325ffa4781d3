// Package workspace wires the session, note store, editor and search box
// into one client.
package workspace

import (
	"context"
	"log/slog"
	"time"

	"gnotes/internal/debounce"
	"gnotes/internal/editor"
	"gnotes/internal/notes"
	"gnotes/internal/service"
	"gnotes/internal/session"
)

// Options configures a Workspace.
type Options struct {
	Service      service.Service
	Tokens       session.TokenStore
	SearchWindow time.Duration
	Logger       *slog.Logger
}

// Workspace is a signed-in (or not) view of the user's notes.
//
// Session transitions drive the store: authenticated fetches, anything else
// clears. Committed searches and successful saves refetch.
type Workspace struct {
	Session *session.Manager
	Notes   *notes.Store
	Editor  *editor.Session
	Search  *debounce.Debouncer

	ctx         context.Context
	log         *slog.Logger
	unsubscribe func()
}

// New builds a Workspace. ctx is used for work started by timers and session
// transitions and should outlive the Workspace.
func New(ctx context.Context, opts Options) *Workspace {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	w := &Workspace{
		ctx: ctx,
		log: log,
	}
	w.Session = session.NewManager(opts.Service, opts.Tokens, log.With("component", "session"))
	w.Notes = notes.NewStore(opts.Service, log.With("component", "notes"))
	w.Editor = editor.New(opts.Service, w.saved, log.With("component", "editor"))
	w.Search = debounce.New(opts.SearchWindow, w.commitQuery)
	w.unsubscribe = w.Session.Subscribe(w.sessionChanged)
	return w
}

// Start restores a persisted session.
func (w *Workspace) Start() session.Status {
	return w.Session.Restore(w.ctx)
}

// Close stops the search timer and detaches from the session.
func (w *Workspace) Close() {
	w.Search.Stop()
	w.unsubscribe()
}

// Login authenticates and loads the notes.
func (w *Workspace) Login(ctx context.Context, username, password string) error {
	return w.Session.Login(ctx, username, password)
}

// Logout ends the session. The note list is empty when it returns.
func (w *Workspace) Logout(ctx context.Context) {
	w.Session.Logout(ctx)
}

// SetSearch feeds raw search input into the debouncer.
func (w *Workspace) SetSearch(raw string) {
	w.Search.Set(raw)
}

// Save submits the open form with the current token.
func (w *Workspace) Save(ctx context.Context) (service.Note, error) {
	return w.Editor.Submit(ctx, w.Session.Token())
}

// Delete removes a note and refetches.
func (w *Workspace) Delete(ctx context.Context, id int) error {
	return w.Notes.Delete(ctx, id)
}

func (w *Workspace) sessionChanged(status session.Status, token string) {
	if err := w.Notes.SetSession(w.ctx, status, token); err != nil {
		w.log.Debug("notes refresh after session change failed", "status", status, "err", err)
	}
}

func (w *Workspace) commitQuery(query string) {
	if query == w.Notes.Snapshot().Query {
		return
	}
	if err := w.Notes.SetQuery(w.ctx, query); err != nil {
		w.log.Debug("search failed", "query", query, "err", err)
	}
}

func (w *Workspace) saved(ctx context.Context, note service.Note) {
	w.log.Debug("note saved", "id", note.ID)
	if err := w.Notes.Invalidate(ctx); err != nil {
		w.log.Debug("refetch after save failed", "err", err)
	}
}

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"gnotes/internal/notes"
	"gnotes/internal/session"
	"gnotes/internal/workspace"
)

// Run starts the browser and blocks until the user quits or ctx is done.
func Run(ctx context.Context, ws *workspace.Workspace, opts Options) error {
	prog := tea.NewProgram(New(ctx, ws, opts), tea.WithAltScreen(), tea.WithContext(ctx))

	// Store and session callbacks fire on whichever goroutine mutated them,
	// possibly inside Update; Send must not block there.
	unsubNotes := ws.Notes.OnChange(func(notes.Snapshot) {
		go prog.Send(notesChangedMsg{})
	})
	defer unsubNotes()
	unsubSession := ws.Session.Subscribe(func(session.Status, string) {
		go prog.Send(sessionChangedMsg{})
	})
	defer unsubSession()

	_, err := prog.Run()
	return err
}

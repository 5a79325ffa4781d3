package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gnotes/internal/session"
)

// notesChangedMsg signals that the note store changed. The model re-reads
// the store instead of trusting a payload, so delivery order does not matter.
type notesChangedMsg struct{}

// sessionChangedMsg signals a session transition.
type sessionChangedMsg struct{}

// startedMsg is sent once the persisted session has been restored.
type startedMsg struct {
	status session.Status
}

// authDoneMsg is the result of a login or register attempt.
type authDoneMsg struct {
	register bool
	username string
	err      error
}

// savedMsg is the result of submitting the editor form.
type savedMsg struct {
	err error
}

// deletedMsg is the result of a delete.
type deletedMsg struct {
	id  int
	err error
}

// loggedOutMsg is sent after logout completes.
type loggedOutMsg struct{}

// clearToastMsg hides the toast if it is still the one that scheduled it.
type clearToastMsg struct {
	seq int
}

const toastDuration = 2 * time.Second

func clearToastAfter(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

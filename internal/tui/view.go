package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"gnotes/internal/editor"
	"gnotes/internal/notes"
	"gnotes/internal/output"
)

// View renders the current screen.
func (m Model) View() string {
	var body, help string
	switch m.screen() {
	case screenStarting:
		body = m.st.Muted.Render("Checking session...")
		help = helpLine(m.form.Quit)
	case screenLogin:
		body = m.viewLogin()
		help = helpLine(m.form.Next, m.form.Switch, m.form.Quit)
	case screenList:
		body = m.viewList()
		help = helpLine(m.keys.Search, m.keys.New, m.keys.Edit, m.keys.Delete,
			m.keys.Copy, m.keys.Theme, m.keys.Logout, m.keys.Quit)
	case screenEditor:
		body = m.viewEditor()
		help = helpLine(m.form.Next, m.form.Submit, m.form.Cancel)
	}

	parts := []string{m.st.Header.Render("gnotes"), "", body, ""}
	if m.toast != "" {
		style := m.st.Toast
		if m.toastErr {
			style = m.st.Error
		}
		parts = append(parts, style.Render(m.toast))
	}
	parts = append(parts, m.st.Help.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewLogin() string {
	heading := "Log in"
	if m.registerMode {
		heading = "Register"
	}

	lines := []string{
		m.st.Title.Bold(true).Render(heading),
		"",
		m.st.Label.Render("Username"),
		m.usernameIn.View(),
		m.st.Label.Render("Password"),
		m.passwordIn.View(),
		"",
	}
	switch {
	case m.authBusy:
		lines = append(lines, m.st.Muted.Render("Please wait..."))
	case m.authErr != "":
		lines = append(lines, m.st.Error.Render(m.authErr))
	case m.authInfo != "":
		lines = append(lines, m.st.Toast.Render(m.authInfo))
	}
	return m.st.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) viewList() string {
	snap := m.ws.Notes.Snapshot()

	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch {
	case snap.Status == notes.Loading && len(snap.Items) == 0:
		b.WriteString(m.st.Muted.Render(output.Loading))
	case snap.Status == notes.Failed:
		b.WriteString(m.st.Error.Render(snap.Err))
	case len(snap.Items) == 0:
		b.WriteString(m.st.Muted.Render(output.NoNotes))
	default:
		b.WriteString(m.viewRows(snap))
	}
	return b.String()
}

func (m Model) viewRows(snap notes.Snapshot) string {
	maxRows := m.height - 8
	if maxRows < 3 {
		maxRows = 3
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(snap.Items) {
		end = len(snap.Items)
	}

	titleWidth := m.width / 3
	if titleWidth < 12 {
		titleWidth = 12
	}
	previewWidth := m.width - titleWidth - 20
	if previewWidth < 10 {
		previewWidth = 10
	}

	now := m.now()
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		note := snap.Items[i]
		title := output.Truncate(note.Title, titleWidth)
		meta := output.Updated(note.UpdatedAt, now)
		if snap.IsPending(note.ID) {
			meta = "deleting…"
		}
		row := runewidth.FillRight(title, titleWidth) + "  " +
			m.st.Muted.Render(output.Preview(note.Content, previewWidth))
		if meta != "" {
			row += "  " + m.st.Muted.Render(meta)
		}
		if i == m.cursor {
			rows = append(rows, m.st.Selected.Render("> "+row))
		} else {
			rows = append(rows, "  "+row)
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewEditor() string {
	st := m.ws.Editor.State()
	heading := "New note"
	if st.Mode == editor.Editing {
		heading = "Edit note"
	}

	lines := []string{
		m.st.Title.Bold(true).Render(heading),
		"",
		m.st.Label.Render("Title"),
		m.titleIn.View(),
	}
	if st.ValidationErr != "" {
		lines = append(lines, m.st.Error.Render(st.ValidationErr))
	}
	lines = append(lines,
		m.st.Label.Render("Content"),
		m.contentIn.View(),
	)
	switch {
	case m.saving:
		lines = append(lines, m.st.Muted.Render("Saving..."))
	case st.Err != "":
		lines = append(lines, m.st.Error.Render(st.Err))
	}
	return m.st.Panel.Render(strings.Join(lines, "\n"))
}

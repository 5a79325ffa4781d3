// Package tui is the interactive note browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gnotes/internal/config"
	"gnotes/internal/editor"
	"gnotes/internal/service"
	"gnotes/internal/session"
	"gnotes/internal/workspace"
)

// Options configures the browser.
type Options struct {
	// Theme is the initial theme name.
	Theme string

	// SaveTheme persists a theme change. Nil means theme changes are not saved.
	SaveTheme func(theme string) error

	// Now is the clock for relative timestamps. Nil means time.Now.
	Now func() time.Time
}

type screen int

const (
	screenStarting screen = iota
	screenLogin
	screenList
	screenEditor
)

const (
	fieldTitle = iota
	fieldContent
)

const (
	fieldUsername = iota
	fieldPassword
)

// Model is the bubbletea model for the browser.
type Model struct {
	ctx       context.Context
	ws        *workspace.Workspace
	saveTheme func(string) error
	now       func() time.Time

	theme string
	st    styles
	keys  listKeys
	form  formKeys

	width  int
	height int

	started bool
	cursor  int

	// Search box
	search    textinput.Model
	searching bool

	// Editor form
	titleIn     textinput.Model
	contentIn   textarea.Model
	editorFocus int
	saving      bool

	// Login/register form
	usernameIn   textinput.Model
	passwordIn   textinput.Model
	loginFocus   int
	registerMode bool
	authBusy     bool
	authErr      string
	authInfo     string

	toast    string
	toastErr bool
	toastSeq int
}

// New creates the browser model over ws.
func New(ctx context.Context, ws *workspace.Workspace, opts Options) Model {
	theme := opts.Theme
	if !config.ValidTheme(theme) {
		theme = config.ThemeLight
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search notes..."

	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Title"
	title.CharLimit = service.MaxTitleLength

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.ShowLineNumbers = false
	content.CharLimit = 0

	username := textinput.New()
	username.Prompt = ""
	username.Placeholder = "Username"

	password := textinput.New()
	password.Prompt = ""
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{
		ctx:        ctx,
		ws:         ws,
		saveTheme:  opts.SaveTheme,
		now:        now,
		theme:      theme,
		st:         newStyles(theme),
		keys:       defaultListKeys,
		form:       defaultFormKeys,
		width:      80,
		height:     24,
		search:     search,
		titleIn:    title,
		contentIn:  content,
		usernameIn: username,
		passwordIn: password,
	}
}

// Init restores the persisted session in the background.
func (m Model) Init() tea.Cmd {
	ws := m.ws
	return func() tea.Msg {
		return startedMsg{status: ws.Start()}
	}
}

func (m Model) screen() screen {
	if !m.started {
		return screenStarting
	}
	if m.ws.Editor.State().Open() {
		return screenEditor
	}
	if m.ws.Session.Status() == session.Authenticated {
		return screenList
	}
	return screenLogin
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case startedMsg:
		m.started = true
		if msg.status != session.Authenticated {
			return m, m.focusLogin(fieldUsername)
		}
		return m, nil

	case notesChangedMsg:
		m.clampCursor()
		return m, nil

	case sessionChangedMsg:
		m.clampCursor()
		return m, nil

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			// The form stays open and shows the error from the editor state.
			return m, nil
		}
		m.titleIn.Blur()
		m.contentIn.Blur()
		return m, m.showToast("Saved", false)

	case deletedMsg:
		if msg.err != nil {
			return m, m.showToast("Delete failed: "+msg.err.Error(), true)
		}
		m.clampCursor()
		return m, m.showToast("Deleted", false)

	case loggedOutMsg:
		m.cursor = 0
		return m, tea.Batch(m.focusLogin(fieldUsername), m.showToast("Logged out", false))

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
			m.toastErr = false
		}
		return m, nil

	case tea.KeyMsg:
		switch m.screen() {
		case screenLogin:
			return m.handleLoginKey(msg)
		case screenList:
			return m.handleListKey(msg)
		case screenEditor:
			return m.handleEditorKey(msg)
		default:
			if key.Matches(msg, m.form.Quit) {
				return m, m.quit()
			}
		}
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	m.ws.Search.Stop()
	return tea.Quit
}

func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	m.toastSeq++
	m.toast = text
	m.toastErr = isErr
	return clearToastAfter(m.toastSeq)
}

func (m *Model) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.search.Width = w - 2
	m.titleIn.Width = w
	m.usernameIn.Width = w
	m.passwordIn.Width = w
	m.contentIn.SetWidth(w)
	h := m.height - 10
	if h < 3 {
		h = 3
	}
	m.contentIn.SetHeight(h)
}

// handleLoginKey handles keys on the login/register form.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.form.Quit):
		return m, m.quit()

	case key.Matches(msg, m.form.Switch):
		m.registerMode = !m.registerMode
		m.authErr = ""
		m.authInfo = ""
		return m, nil

	case key.Matches(msg, m.form.Next):
		return m, m.focusLogin(1 - m.loginFocus)

	case msg.Type == tea.KeyEnter:
		if m.loginFocus == fieldUsername {
			return m, m.focusLogin(fieldPassword)
		}
		return m, m.submitAuth()
	}

	var cmd tea.Cmd
	if m.loginFocus == fieldUsername {
		m.usernameIn, cmd = m.usernameIn.Update(msg)
	} else {
		m.passwordIn, cmd = m.passwordIn.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusLogin(field int) tea.Cmd {
	m.loginFocus = field
	if field == fieldUsername {
		m.passwordIn.Blur()
		return m.usernameIn.Focus()
	}
	m.usernameIn.Blur()
	return m.passwordIn.Focus()
}

func (m *Model) submitAuth() tea.Cmd {
	if m.authBusy {
		return nil
	}
	m.authBusy = true
	m.authErr = ""
	m.authInfo = ""

	ctx, ws := m.ctx, m.ws
	register := m.registerMode
	username, password := m.usernameIn.Value(), m.passwordIn.Value()
	return func() tea.Msg {
		var err error
		if register {
			err = ws.Session.Register(ctx, username, password)
		} else {
			err = ws.Login(ctx, username, password)
		}
		return authDoneMsg{register: register, username: username, err: err}
	}
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	m.authBusy = false
	if msg.err != nil {
		m.authErr = authMessage(msg.register, msg.err)
		return m, nil
	}

	m.passwordIn.SetValue("")
	if msg.register {
		m.registerMode = false
		m.authInfo = "Registered. Log in to continue."
		m.usernameIn.SetValue(msg.username)
		return m, m.focusLogin(fieldPassword)
	}

	m.usernameIn.SetValue("")
	m.usernameIn.Blur()
	m.passwordIn.Blur()
	m.cursor = 0
	return m, nil
}

// authMessage renders a login or register failure for the form.
func authMessage(register bool, err error) string {
	switch {
	case errors.Is(err, session.ErrMissingFields):
		return "Please fill in all fields"
	case errors.Is(err, session.ErrPasswordTooShort):
		return fmt.Sprintf("Password must be at least %d characters", session.MinPasswordLength)
	}

	if register {
		detail := "Try another username"
		if apiErr, ok := service.AsAPIError(err); ok {
			if msg := apiErr.Message(); msg != "" {
				detail = msg
			}
		} else {
			detail = err.Error()
		}
		return "Registration failed: " + detail
	}

	var credErr *session.CredentialError
	if errors.As(err, &credErr) {
		return "Login failed: " + credErr.Detail
	}
	return "Login failed: " + err.Error()
}

// handleListKey handles keys on the note list.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.ws.Notes.Snapshot().Items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.New):
		m.ws.Editor.OpenForCreate()
		return m, m.loadForm()

	case key.Matches(msg, m.keys.Edit):
		if note, ok := m.selected(); ok {
			m.ws.Editor.OpenForEdit(note)
			return m, m.loadForm()
		}

	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteSelected()

	case key.Matches(msg, m.keys.Copy):
		if note, ok := m.selected(); ok {
			if err := clipboard.WriteAll(note.Content); err != nil {
				return m, m.showToast("Copy failed: "+err.Error(), true)
			}
			return m, m.showToast("Copied note content", false)
		}

	case key.Matches(msg, m.keys.Theme):
		return m, m.toggleTheme()

	case key.Matches(msg, m.keys.Logout):
		ctx, ws := m.ctx, m.ws
		return m, func() tea.Msg {
			ws.Logout(ctx)
			return loggedOutMsg{}
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		// Flush commits synchronously and the commit fetches.
		search := m.ws.Search
		return m, func() tea.Msg {
			search.Flush()
			return nil
		}
	case tea.KeyCtrlC:
		return m, m.quit()
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.ws.SetSearch(v)
		m.cursor = 0
	}
	return m, cmd
}

func (m *Model) selected() (service.Note, bool) {
	items := m.ws.Notes.Snapshot().Items
	if m.cursor < 0 || m.cursor >= len(items) {
		return service.Note{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ws.Notes.Snapshot().Items)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) deleteSelected() tea.Cmd {
	note, ok := m.selected()
	if !ok || m.ws.Notes.Snapshot().IsPending(note.ID) {
		return nil
	}
	ctx, ws, id := m.ctx, m.ws, note.ID
	return func() tea.Msg {
		return deletedMsg{id: id, err: ws.Delete(ctx, id)}
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	next := config.ThemeDark
	if m.theme == config.ThemeDark {
		next = config.ThemeLight
	}
	m.theme = next
	m.st = newStyles(next)
	if m.saveTheme == nil {
		return nil
	}
	if err := m.saveTheme(next); err != nil {
		return m.showToast("Theme not saved: "+err.Error(), true)
	}
	return nil
}

// loadForm copies the editor state into the form inputs.
func (m *Model) loadForm() tea.Cmd {
	st := m.ws.Editor.State()
	m.titleIn.SetValue(st.Title)
	m.contentIn.SetValue(st.Content)
	m.saving = false
	return m.focusEditor(fieldTitle)
}

func (m *Model) focusEditor(field int) tea.Cmd {
	m.editorFocus = field
	if field == fieldTitle {
		m.contentIn.Blur()
		return m.titleIn.Focus()
	}
	m.titleIn.Blur()
	return m.contentIn.Focus()
}

// handleEditorKey handles keys on the editor form.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.form.Quit):
		return m, m.quit()

	case key.Matches(msg, m.form.Cancel):
		if m.saving {
			return m, nil
		}
		m.ws.Editor.Close()
		m.titleIn.Blur()
		m.contentIn.Blur()
		return m, nil

	case key.Matches(msg, m.form.Next):
		return m, m.focusEditor(1 - m.editorFocus)

	case key.Matches(msg, m.form.Submit):
		return m, m.submitEditor()
	}

	var cmd tea.Cmd
	if m.editorFocus == fieldTitle {
		if msg.Type == tea.KeyEnter {
			return m, m.focusEditor(fieldContent)
		}
		before := m.titleIn.Value()
		m.titleIn, cmd = m.titleIn.Update(msg)
		if v := m.titleIn.Value(); v != before {
			_ = m.ws.Editor.UpdateField(editor.FieldTitle, v)
		}
	} else {
		m.contentIn, cmd = m.contentIn.Update(msg)
	}
	return m, cmd
}

func (m *Model) submitEditor() tea.Cmd {
	if m.saving {
		return nil
	}
	ed := m.ws.Editor
	// Both field names are known; UpdateField cannot fail here.
	_ = ed.UpdateField(editor.FieldTitle, m.titleIn.Value())
	_ = ed.UpdateField(editor.FieldContent, m.contentIn.Value())
	m.saving = true

	ctx, ws := m.ctx, m.ws
	return func() tea.Msg {
		_, err := ws.Save(ctx)
		return savedMsg{err: err}
	}
}

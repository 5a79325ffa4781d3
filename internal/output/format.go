// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"gnotes/internal/service"
)

const (
	// TitleWidth is the display width of the title column in lists.
	TitleWidth = 40

	// NoNotes is printed for an empty list.
	NoNotes = "No notes found."

	// NoContent stands in for an empty note body.
	NoContent = "No content"

	// Loading is shown while the list is being fetched.
	Loading = "Loading notes..."

	ellipsis = "…"
)

// FormatNote formats a note line for the list.
// Format: "{N:>4}  {TITLE padded to TitleWidth}  {UPDATED}\n"
func FormatNote(w io.Writer, num int, note service.Note, now time.Time) {
	title := Truncate(normalizeTitle(note.Title), TitleWidth)
	updated := Updated(note.UpdatedAt, now)
	if updated == "" {
		fmt.Fprintf(w, "%4d  %s\n", num, title)
		return
	}
	fmt.Fprintf(w, "%4d  %s  %s\n", num, runewidth.FillRight(title, TitleWidth), updated)
}

// FormatNoteID formats a note line keyed by ID, for filtered lists where
// positions would not be valid references.
// Format: "{#ID:>4}  {TITLE padded to TitleWidth}  {UPDATED}\n"
func FormatNoteID(w io.Writer, note service.Note, now time.Time) {
	ref := fmt.Sprintf("#%d", note.ID)
	title := Truncate(normalizeTitle(note.Title), TitleWidth)
	updated := Updated(note.UpdatedAt, now)
	if updated == "" {
		fmt.Fprintf(w, "%4s  %s\n", ref, title)
		return
	}
	fmt.Fprintf(w, "%4s  %s  %s\n", ref, runewidth.FillRight(title, TitleWidth), updated)
}

// FormatNoteDetail formats a single note for the show command.
func FormatNoteDetail(w io.Writer, note service.Note, now time.Time) {
	fmt.Fprintf(w, "#%d  %s\n", note.ID, normalizeTitle(note.Title))
	if updated := Updated(note.UpdatedAt, now); updated != "" {
		fmt.Fprintf(w, "Updated %s\n", updated)
	}
	fmt.Fprintln(w)
	if strings.TrimSpace(note.Content) == "" {
		fmt.Fprintln(w, NoContent)
		return
	}
	fmt.Fprintln(w, strings.TrimRight(note.Content, "\n"))
}

// Updated renders t relative to now, or "" for the zero time.
func Updated(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Preview returns the first line of content cut to width cells.
func Preview(content string, width int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	if line == "" {
		return NoContent
	}
	return Truncate(line, width)
}

// Truncate cuts s to width display cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// normalizeTitle normalizes a note title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

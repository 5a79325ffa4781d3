package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"gnotes/internal/notes"
	"gnotes/internal/service"
)

// NoteRef represents a parsed note reference.
type NoteRef struct {
	Pos int // 1-based position in the unfiltered list, 0 if ID is set
	ID  int // backend note ID, 0 if Pos is set
}

func (r NoteRef) String() string {
	if r.ID != 0 {
		return fmt.Sprintf("#%d", r.ID)
	}
	return strconv.Itoa(r.Pos)
}

// ErrNoteRefRequired indicates no note reference was provided.
var ErrNoteRefRequired = errors.New("note reference required")

// ParseNoteRef parses a note reference from args.
//
// Parsing rules:
// 1. If first arg is all digits → position in the list printed by `gnotes list`
// 2. If first arg is # followed by digits → note ID
// 3. Otherwise → error: invalid note reference: <ref>
func ParseNoteRef(args []string) (NoteRef, error) {
	if len(args) == 0 {
		return NoteRef{}, ErrNoteRefRequired
	}
	if len(args) > 1 {
		return NoteRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := args[0]
	if isAllDigits(arg) {
		pos, err := strconv.Atoi(arg)
		if err != nil || pos < 1 {
			return NoteRef{}, fmt.Errorf("invalid note reference: %s", arg)
		}
		return NoteRef{Pos: pos}, nil
	}

	if id, ok := strings.CutPrefix(arg, "#"); ok && isAllDigits(id) {
		n, err := strconv.Atoi(id)
		if err != nil || n < 1 {
			return NoteRef{}, fmt.Errorf("invalid note reference: %s", arg)
		}
		return NoteRef{ID: n}, nil
	}

	return NoteRef{}, fmt.Errorf("invalid note reference: %s", arg)
}

// ResolveNoteRef finds the note ref points at in an unfiltered snapshot.
func ResolveNoteRef(snap notes.Snapshot, ref NoteRef) (service.Note, error) {
	if ref.ID != 0 {
		for _, n := range snap.Items {
			if n.ID == ref.ID {
				return n, nil
			}
		}
		return service.Note{}, fmt.Errorf("note not found: %s", ref)
	}
	if ref.Pos < 1 || ref.Pos > len(snap.Items) {
		return service.Note{}, fmt.Errorf("note number out of range: %d", ref.Pos)
	}
	return snap.Items[ref.Pos-1], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

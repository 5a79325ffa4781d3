package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"gnotes/internal/config"
	"gnotes/internal/exitcode"
	"gnotes/internal/output"
	"gnotes/internal/service"
)

// now is the clock used for relative timestamps (replaced in tests).
var now = time.Now

func init() {
	Register(GroupNotes, &ListCmd{})
}

// ListCmd implements the list command.
// Handles both `gnotes` (no args) and `gnotes list --search <q>`.
type ListCmd struct {
	search string
}

// SetSearch sets the search query (for testing).
func (c *ListCmd) SetSearch(q string) {
	c.search = q
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List notes" }
func (c *ListCmd) Usage() string     { return "gnotes list [--search <query>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ws, code := restoreWorkspace(ctx, cfg, svc, errOut)
	if ws == nil {
		return code
	}
	defer ws.Close()

	query := strings.TrimSpace(c.search)
	if query != "" {
		if err := ws.Notes.SetQuery(ctx, query); err != nil {
			return reportError(errOut, err)
		}
	} else if err := ws.Notes.LastError(); err != nil {
		return reportError(errOut, fmt.Errorf("fetch notes: %w", err))
	}

	snap := ws.Notes.Snapshot()
	if len(snap.Items) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.NoNotes)
		}
		return exitcode.Success
	}

	t := now()
	for i, note := range snap.Items {
		if query != "" {
			output.FormatNoteID(out, note, t)
		} else {
			output.FormatNote(out, i+1, note, t)
		}
	}
	return exitcode.Success
}

package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gnotes/internal/config"
	"gnotes/internal/exitcode"
	"gnotes/internal/service"
)

func init() {
	Register(GroupNotes, &RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a note" }
func (c *RmCmd) Usage() string     { return "gnotes rm <ref>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := ParseNoteRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ws, code := restoreWorkspace(ctx, cfg, svc, errOut)
	if ws == nil {
		return code
	}
	defer ws.Close()

	id := ref.ID
	if ref.Pos != 0 {
		if err := ws.Notes.LastError(); err != nil {
			return reportError(errOut, fmt.Errorf("fetch notes: %w", err))
		}
		note, err := ResolveNoteRef(ws.Notes.Snapshot(), ref)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		id = note.ID
	}

	if err := ws.Delete(ctx, id); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

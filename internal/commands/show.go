package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gnotes/internal/config"
	"gnotes/internal/exitcode"
	"gnotes/internal/output"
	"gnotes/internal/service"
)

func init() {
	Register(GroupNotes, &ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return []string{"cat"} }
func (c *ShowCmd) Synopsis() string  { return "Print a note" }
func (c *ShowCmd) Usage() string     { return "gnotes show <ref>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
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

	if err := ws.Notes.LastError(); err != nil {
		return reportError(errOut, fmt.Errorf("fetch notes: %w", err))
	}

	note, err := ResolveNoteRef(ws.Notes.Snapshot(), ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	output.FormatNoteDetail(out, note, now())
	return exitcode.Success
}

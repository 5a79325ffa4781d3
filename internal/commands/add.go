package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"gnotes/internal/config"
	"gnotes/internal/editor"
	"gnotes/internal/exitcode"
	"gnotes/internal/service"
)

func init() {
	Register(GroupNotes, &AddCmd{})
	Register(GroupNotes, &CreateCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	content string
}

// SetContent sets the note body (for testing).
func (c *AddCmd) SetContent(content string) {
	c.content = content
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Create a note" }
func (c *AddCmd) Usage() string     { return "gnotes add [--content <text>|-] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.content, "content", "", "")
	fs.StringVar(&c.content, "c", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, svc, c.content, args, out, errOut)
}

// CreateCmd is an alias for AddCmd.
type CreateCmd struct {
	content string
}

func (c *CreateCmd) Name() string      { return "create" }
func (c *CreateCmd) Aliases() []string { return nil }
func (c *CreateCmd) Synopsis() string  { return "Create a note (alias for add)" }
func (c *CreateCmd) Usage() string     { return "gnotes create [--content <text>|-] <title...>" }
func (c *CreateCmd) NeedsAuth() bool   { return true }

func (c *CreateCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.content, "content", "", "")
	fs.StringVar(&c.content, "c", "", "")
}

func (c *CreateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, svc, c.content, args, out, errOut)
}

// runAdd is the shared implementation for add and create commands.
func runAdd(ctx context.Context, cfg *config.Config, svc service.Service, content string, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if err := editor.Validate(title); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if content == "-" {
		var err error
		if content, err = readStdin(); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	ws, code := restoreWorkspace(ctx, cfg, svc, errOut)
	if ws == nil {
		return code
	}
	defer ws.Close()

	ws.Editor.OpenForCreate()
	if err := ws.Editor.UpdateField(editor.FieldTitle, title); err != nil {
		return reportError(errOut, err)
	}
	if err := ws.Editor.UpdateField(editor.FieldContent, content); err != nil {
		return reportError(errOut, err)
	}

	note, err := ws.Save(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	cfg.Logger().Debug("created note", "id", note.ID)
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

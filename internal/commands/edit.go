package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gnotes/internal/config"
	"gnotes/internal/editor"
	"gnotes/internal/exitcode"
	"gnotes/internal/service"
)

func init() {
	Register(GroupNotes, &EditCmd{})
}

// optionalString is a string flag that remembers whether it was given.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title   optionalString
	content optionalString
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a note's title or content" }
func (c *EditCmd) Usage() string {
	return "gnotes edit [--title <title>] [--content <text>|-] <ref>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.content, "content", "")
	fs.Var(&c.content, "c", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := ParseNoteRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !c.title.set && !c.content.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --content)")
		return exitcode.UserError
	}

	content := c.content.value
	if c.content.set && content == "-" {
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

	if err := ws.Notes.LastError(); err != nil {
		return reportError(errOut, fmt.Errorf("fetch notes: %w", err))
	}
	note, err := ResolveNoteRef(ws.Notes.Snapshot(), ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ws.Editor.OpenForEdit(note)
	if c.title.set {
		if err := ws.Editor.UpdateField(editor.FieldTitle, c.title.value); err != nil {
			return reportError(errOut, err)
		}
	}
	if c.content.set {
		if err := ws.Editor.UpdateField(editor.FieldContent, content); err != nil {
			return reportError(errOut, err)
		}
	}

	if _, err := ws.Save(ctx); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

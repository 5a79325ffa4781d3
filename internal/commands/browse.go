package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gnotes/internal/config"
	"gnotes/internal/exitcode"
	"gnotes/internal/service"
	"gnotes/internal/tui"
)

func init() {
	Register(GroupNotes, &BrowseCmd{})
}

// BrowseCmd implements the browse command.
type BrowseCmd struct{}

func (c *BrowseCmd) Name() string      { return "browse" }
func (c *BrowseCmd) Aliases() []string { return []string{"ui"} }
func (c *BrowseCmd) Synopsis() string  { return "Open the interactive browser" }
func (c *BrowseCmd) Usage() string     { return "gnotes browse [common flags]" }
func (c *BrowseCmd) NeedsAuth() bool   { return false }

func (c *BrowseCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *BrowseCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ws := openWorkspace(ctx, cfg, svc)
	defer ws.Close()

	err := tui.Run(ctx, ws, tui.Options{
		Theme:     cfg.Theme,
		SaveTheme: cfg.SaveTheme,
	})
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

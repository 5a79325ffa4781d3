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
	Register(GroupOther, &ThemeCmd{})
}

// ThemeCmd implements the theme command.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or change the color theme" }
func (c *ThemeCmd) Usage() string     { return "gnotes theme [light|dark|toggle]" }
func (c *ThemeCmd) NeedsAuth() bool   { return false }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(out, cfg.Theme)
		return exitcode.Success
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	theme := args[0]
	if theme == "toggle" {
		theme = config.ThemeDark
		if cfg.Theme == config.ThemeDark {
			theme = config.ThemeLight
		}
	}
	if !config.ValidTheme(theme) {
		fmt.Fprintf(errOut, "error: invalid theme: %s\n", theme)
		return exitcode.UserError
	}

	if err := cfg.SaveTheme(theme); err != nil {
		fmt.Fprintf(errOut, "error: failed to save theme: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, theme)
	}
	return exitcode.Success
}

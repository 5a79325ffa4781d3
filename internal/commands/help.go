package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"gnotes/internal/config"
	"gnotes/internal/exitcode"
	"gnotes/internal/service"
)

func init() {
	Register(GroupOther, &HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	registry *Registry
}

// SetRegistry sets the registry whose commands are listed (for testing).
func (c *HelpCmd) SetRegistry(r *Registry) {
	c.registry = r
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "gnotes help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	r := c.registry
	if r == nil {
		r = DefaultRegistry
	}
	fmt.Fprint(out, FormatHelp(r))
	return exitcode.Success
}

// FormatHelp renders usage for every command in r, grouped by section.
func FormatHelp(r *Registry) string {
	sections := r.Sections()

	width := len(defaultUsage)
	for _, sec := range sections {
		for _, cmd := range sec.Commands {
			width = max(width, runewidth.StringWidth(cmd.Usage()))
		}
	}

	var b strings.Builder
	b.WriteString("Usage:\n")
	writeHelpLine(&b, width, defaultUsage, "List notes (same as gnotes list)")
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.Group)
		for _, cmd := range sec.Commands {
			synopsis := cmd.Synopsis()
			if aliases := cmd.Aliases(); len(aliases) > 0 {
				synopsis += " (also: " + strings.Join(aliases, ", ") + ")"
			}
			writeHelpLine(&b, width, cmd.Usage(), synopsis)
		}
	}
	b.WriteString(helpTrailer)
	return b.String()
}

const defaultUsage = "gnotes [common flags]"

func writeHelpLine(b *strings.Builder, width int, usage, synopsis string) {
	fmt.Fprintf(b, "  %s  %s\n", runewidth.FillRight(usage, width), synopsis)
}

const helpTrailer = `
Refs:
  <n>              Position in the unfiltered list
  #<id>            Note ID, as printed by list --search

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  GNOTES_API_URL      Backend base URL
  GNOTES_CONFIG_DIR   Config directory
  GNOTES_PASSWORD     Password for login and register
`

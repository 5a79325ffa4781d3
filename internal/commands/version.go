package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime"

	"gnotes/internal/config"
	"gnotes/internal/exitcode"
	"gnotes/internal/service"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(GroupOther, &VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct {
	verbose bool
}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version" }
func (c *VersionCmd) Usage() string     { return "gnotes version [--verbose]" }
func (c *VersionCmd) NeedsAuth() bool   { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "")
	fs.BoolVar(&c.verbose, "v", false, "")
}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "gnotes %s\n", Version)
	if c.verbose {
		fmt.Fprintf(out, "api:    %s\n", cfg.APIURL)
		fmt.Fprintf(out, "config: %s\n", cfg.Dir)
		fmt.Fprintf(out, "go:     %s\n", runtime.Version())
	}
	return exitcode.Success
}

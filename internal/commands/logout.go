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
	Register(GroupAccount, &LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Sign out and remove the stored token" }
func (c *LogoutCmd) Usage() string     { return "gnotes logout [common flags]" }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !cfg.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	ws := openWorkspace(ctx, cfg, svc)
	defer ws.Close()

	// Restore so the backend can be told which token to revoke. A token it
	// no longer accepts is discarded here already.
	ws.Start()
	ws.Logout(ctx)

	if cfg.HasToken() {
		fmt.Fprintf(errOut, "error: failed to remove token: %s\n", cfg.TokenPath())
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"gnotes/internal/config"
	"gnotes/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth reports whether a stored token is required before Run.
	// The dispatcher only checks that the token file exists; commands that
	// touch notes still restore the session and handle a rejected token.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command and returns its exit code.
	// cfg carries the config dir, settings and logger. svc is the notes
	// backend; note commands reach it through a workspace rather than
	// directly, so session and store rules apply. svc is nil only when the
	// dispatcher has no service factory. args are the positional arguments
	// left after flag parsing.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

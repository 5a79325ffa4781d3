package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gnotes/internal/config"
	"gnotes/internal/exitcode"
	"gnotes/internal/service"
	"gnotes/internal/session"
)

// EnvPassword supplies the password when --password is not given.
const EnvPassword = "GNOTES_PASSWORD"

func init() {
	Register(GroupAccount, &LoginCmd{})
	Register(GroupAccount, &RegisterCmd{})
}

// credentialFlags are shared by login and register.
type credentialFlags struct {
	username string
	password string
}

func (f *credentialFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.username, "username", "", "")
	fs.StringVar(&f.username, "u", "", "")
	fs.StringVar(&f.password, "password", "", "")
	fs.StringVar(&f.password, "p", "", "")
}

// resolve fills the password from the environment or the first line of stdin.
func (f *credentialFlags) resolve() (string, string, error) {
	if f.password != "" {
		return f.username, f.password, nil
	}
	if pw := os.Getenv(EnvPassword); pw != "" {
		return f.username, pw, nil
	}
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return f.username, strings.TrimRight(scanner.Text(), "\r"), nil
	}
	if err := scanner.Err(); err != nil {
		return "", "", fmt.Errorf("read password: %w", err)
	}
	return f.username, "", nil
}

// LoginCmd implements the login command.
type LoginCmd struct {
	creds credentialFlags
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in and store a token" }
func (c *LoginCmd) Usage() string {
	return "gnotes login --username <name> [--password <password>]"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) { c.creds.register(fs) }

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ws := openWorkspace(ctx, cfg, svc)
	defer ws.Close()

	// A stored token that still works needs no new login.
	if cfg.HasToken() && ws.Start() == session.Authenticated {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	username, password, err := c.creds.resolve()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := ws.Login(ctx, username, password); err != nil {
		var credErr *session.CredentialError
		if errors.As(err, &credErr) {
			fmt.Fprintf(errOut, "error: Login failed: %s\n", credErr.Detail)
			return exitcode.AuthError
		}
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	creds credentialFlags
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "gnotes register --username <name> [--password <password>]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) { c.creds.register(fs) }

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	username, password, err := c.creds.resolve()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ws := openWorkspace(ctx, cfg, svc)
	defer ws.Close()

	if err := ws.Session.Register(ctx, username, password); err != nil {
		if apiErr, ok := service.AsAPIError(err); ok {
			detail := apiErr.Message()
			if detail == "" {
				detail = "Try another username"
			}
			fmt.Fprintf(errOut, "error: Registration failed: %s\n", detail)
			return exitcode.BackendError
		}
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (run: gnotes login --username %s)\n", username)
	}
	return exitcode.Success
}

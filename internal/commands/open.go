package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gnotes/internal/config"
	"gnotes/internal/editor"
	"gnotes/internal/exitcode"
	"gnotes/internal/service"
	"gnotes/internal/session"
	"gnotes/internal/workspace"
)

// stdin is where passwords and "-" content are read from (replaced in tests).
var stdin io.Reader = os.Stdin

// readStdin reads all of stdin, dropping one trailing newline.
func readStdin() (string, error) {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

// openWorkspace builds a workspace over the persisted token. Callers must Close it.
func openWorkspace(ctx context.Context, cfg *config.Config, svc service.Service) *workspace.Workspace {
	return workspace.New(ctx, workspace.Options{
		Service:      svc,
		Tokens:       cfg.Tokens(),
		SearchWindow: cfg.SearchDebounce,
		Logger:       cfg.Logger(),
	})
}

// restoreWorkspace opens a workspace and requires the persisted token to
// still be accepted. The note list is loaded when it returns successfully.
func restoreWorkspace(ctx context.Context, cfg *config.Config, svc service.Service, errOut io.Writer) (*workspace.Workspace, int) {
	ws := openWorkspace(ctx, cfg, svc)
	if ws.Start() != session.Authenticated {
		ws.Close()
		fmt.Fprintln(errOut, "error: could not restore session (run: gnotes login)")
		return nil, exitcode.AuthError
	}
	return ws, exitcode.Success
}

// reportError prints err the way every command does and returns its exit code.
func reportError(errOut io.Writer, err error) int {
	code := exitcode.For(err)

	var saveErr *editor.SaveError
	if errors.As(err, &saveErr) {
		fmt.Fprintf(errOut, "error: %s\n", saveErr.Message)
		return code
	}

	switch code {
	case exitcode.TransportError:
		fmt.Fprintf(errOut, "error: backend unreachable: %v\n", err)
	case exitcode.BackendError:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return code
}

package commands_test

import (
	"errors"
	"strings"
	"testing"

	"gnotes/internal/commands"
	"gnotes/internal/exitcode"
	"gnotes/internal/testutil"
)

func newAccount(t *testing.T) *testutil.FakeService {
	t.Helper()
	t.Setenv(commands.EnvPassword, "")
	svc := testutil.NewFakeService()
	svc.AddUser("alice", "secret1")
	return svc
}

func TestLoginCommand(t *testing.T) {
	svc := newAccount(t)
	cfg := newConfig(t, false)

	stdout, stderr, code := runWithFlags(t, &commands.LoginCmd{}, svc, cfg,
		"--username", "alice", "--password", "secret1")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	tok, err := cfg.Tokens().Load()
	if err != nil || !strings.HasPrefix(tok, "tok-alice-") {
		t.Errorf("token not persisted: %q, %v", tok, err)
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	svc := newAccount(t)
	cfg := newConfig(t, false)

	_, stderr, code := runWithFlags(t, &commands.LoginCmd{}, svc, cfg, "-u", "alice", "-p", "nope")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: Login failed: Invalid credentials\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if cfg.HasToken() {
		t.Error("no token expected after failed login")
	}
}

func TestLoginCommand_MissingFields(t *testing.T) {
	svc := newAccount(t)
	t.Cleanup(commands.SetStdin(strings.NewReader("")))

	_, stderr, code := runWithFlags(t, &commands.LoginCmd{}, svc, nil, "-u", "alice")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr == "" {
		t.Error("expected an error message")
	}
	if len(svc.CallsTo("login")) != 0 {
		t.Error("no login call expected")
	}
}

func TestLoginCommand_PasswordSources(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		svc := newAccount(t)
		t.Cleanup(commands.SetStdin(strings.NewReader("secret1\nignored\n")))

		_, stderr, code := runWithFlags(t, &commands.LoginCmd{}, svc, nil, "-u", "alice")
		if code != exitcode.Success {
			t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
		}
	})

	t.Run("environment", func(t *testing.T) {
		svc := newAccount(t)
		t.Setenv(commands.EnvPassword, "secret1")

		_, stderr, code := runWithFlags(t, &commands.LoginCmd{}, svc, nil, "-u", "alice")
		if code != exitcode.Success {
			t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
		}
	})
}

func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	svc, cfg := loggedIn(t)

	stdout, _, code := runWithFlags(t, &commands.LoginCmd{}, svc, cfg, "-u", "alice", "-p", "secret1")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "already logged in\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if len(svc.CallsTo("login")) != 0 {
		t.Error("a working token needs no new login")
	}
}

func TestLoginCommand_StaleTokenReplaced(t *testing.T) {
	svc := newAccount(t)
	cfg := newConfig(t, false)
	if err := cfg.Tokens().Save("tok-revoked"); err != nil {
		t.Fatal(err)
	}

	_, _, code := runWithFlags(t, &commands.LoginCmd{}, svc, cfg, "-u", "alice", "-p", "secret1")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if tok, _ := cfg.Tokens().Load(); tok == "tok-revoked" {
		t.Error("stale token should be replaced")
	}
}

func TestRegisterCommand(t *testing.T) {
	svc := newAccount(t)
	cfg := newConfig(t, false)

	stdout, _, code := runWithFlags(t, &commands.RegisterCmd{}, svc, cfg, "-u", "bob", "-p", "hunter2")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok (run: gnotes login --username bob)\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if cfg.HasToken() {
		t.Error("registering must not log in")
	}
}

func TestRegisterCommand_Duplicate(t *testing.T) {
	svc := newAccount(t)

	_, stderr, code := runWithFlags(t, &commands.RegisterCmd{}, svc, nil, "-u", "alice", "-p", "secret1")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.HasPrefix(stderr, "error: Registration failed: ") ||
		!strings.Contains(stderr, "already exists") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestRegisterCommand_ShortPassword(t *testing.T) {
	svc := newAccount(t)

	_, _, code := runWithFlags(t, &commands.RegisterCmd{}, svc, nil, "-u", "bob", "-p", "abc")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if len(svc.CallsTo("register")) != 0 {
		t.Error("local validation should stop the request")
	}
}

func TestLogoutCommand(t *testing.T) {
	svc, cfg := loggedIn(t)

	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, svc, cfg, nil)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	if cfg.HasToken() {
		t.Error("token should be removed")
	}
	if len(svc.CallsTo("logout")) != 1 {
		t.Error("backend should be told to revoke the token")
	}
}

func TestLogoutCommand_BackendFails(t *testing.T) {
	svc, cfg := loggedIn(t)
	svc.LogoutErr = errors.New("boom")

	_, _, code := runCommand(t, &commands.LogoutCmd{}, svc, cfg, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if cfg.HasToken() {
		t.Error("token should be removed even when the backend fails")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	svc := newAccount(t)

	stdout, _, code := runCommand(t, &commands.LogoutCmd{}, svc, nil, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if len(svc.Calls()) != 0 {
		t.Error("no backend calls expected")
	}
}

package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Open(_ context.Context, path string) error {
	f.calls = append(f.calls, "open "+path)
	return nil
}
func (f *fakeExec) Get(_ context.Context, path string) error {
	f.calls = append(f.calls, "get "+path)
	return nil
}
func (f *fakeExec) Check(context.Context) error  { f.calls = append(f.calls, "check"); return nil }
func (f *fakeExec) Whoami(context.Context) error { f.calls = append(f.calls, "whoami"); return nil }
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func captureREPL(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = v.(string)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	out := captureREPL(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"open /dashboard",
		"get /api/profile",
		"check",
		"whoami",
		"logout",
		"register",
		"foobar",
		"exit",
		"check",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	assert.Equal(t, []string{
		"login", "open /dashboard", "get /api/profile", "check", "whoami", "logout", "register",
	}, exec.calls)
	assert.Contains(t, *out, "mm status> ")
	assert.Contains(t, *out, "Available commands: register, login, open <path>, get <path>, check, exit")
	assert.Contains(t, *out, "Available commands: open <path>, get <path>, check, whoami, logout, exit")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_UsageAndEOF(t *testing.T) {
	out := captureREPL(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("get\nopen\n"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: get <path>")
	assert.Contains(t, *out, "Usage: open <path>")
}

func TestRunREPL_CancelledContext(t *testing.T) {
	captureREPL(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, rdr("login\n"))

	assert.Empty(t, exec.calls)
}

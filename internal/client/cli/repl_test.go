package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	fail     map[string]error
}

func (f *fakeExec) rec(name string, args ...string) error {
	call := name
	if len(args) > 0 {
		call += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, call)
	return f.fail[name]
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }

func (f *fakeExec) Register(context.Context) error { return f.rec("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.rec("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.rec("logout")
}
func (f *fakeExec) Me(context.Context) error { return f.rec("me") }
func (f *fakeExec) Forgot(context.Context) error { return f.rec("forgot") }
func (f *fakeExec) Reset(context.Context) error { return f.rec("reset") }
func (f *fakeExec) Waitlist(context.Context) error { return f.rec("waitlist") }
func (f *fakeExec) Contact(context.Context) error { return f.rec("contact") }
func (f *fakeExec) Messages(context.Context) error { return f.rec("messages") }
func (f *fakeExec) Send(context.Context) error { return f.rec("send") }
func (f *fakeExec) Read(_ context.Context, a []string) error { return f.rec("read", a...) }
func (f *fakeExec) Upload(_ context.Context, a []string) error { return f.rec("upload", a...) }
func (f *fakeExec) Status(context.Context) error { return f.rec("status") }
func (f *fakeExec) Participants(context.Context) error { return f.rec("participants") }
func (f *fakeExec) Documents(_ context.Context, a []string) error { return f.rec("documents", a...) }
func (f *fakeExec) Review(_ context.Context, a []string) error { return f.rec("review", a...) }
func (f *fakeExec) Menu(_ context.Context, a []string) error { return f.rec("menu", a...) }
func (f *fakeExec) Consent(_ context.Context, a []string) error { return f.rec("consent", a...) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"me",
		"messages",
		"read 42",
		"upload identity ./passport.pdf",
		"documents 7",
		"review 12 rejected blurry photo",
		"menu disable pricing",
		"consent accept",
		"foobar",
		"logout",
		"exit",
		"me",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login",
		"me",
		"messages",
		"read 42",
		"upload identity ./passport.pdf",
		"documents 7",
		"review 12 rejected blurry photo",
		"menu disable pricing",
		"consent accept",
		"logout",
	}, exec.calls)

	assert.Contains(t, *out, helpSignedOut)
	assert.Contains(t, *out, helpSignedIn)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{fail: map[string]error{"me": errors.New("not signed in")}}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("me\nstatus\n")))

	assert.Equal(t, []string{"me", "status"}, exec.calls)
	assert.Contains(t, *out, "error: not signed in")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	captureOutput(t)
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("")))
	assert.Empty(t, exec.calls)
}

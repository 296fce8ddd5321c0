package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/calvinalkan/timetrack/internal/store"
	"github.com/calvinalkan/timetrack/internal/tracker"
)

// TestEpoch is the instant a new test CLI's clock is pinned to.
var TestEpoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// CLI provides a clean interface for running CLI commands in tests.
// It manages a temp directory, a pinned clock, and environment variables
// that keep config and data inside the temp directory.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with a temp directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	c := &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{
			"HOME":            filepath.Join(dir, "home"),
			"XDG_CONFIG_HOME": filepath.Join(dir, "config"),
			"XDG_DATA_HOME":   filepath.Join(dir, "data"),
		},
	}
	c.SetNow(TestEpoch)

	return c
}

// SetNow pins the clock seen by subsequent runs.
func (r *CLI) SetNow(now time.Time) {
	r.Env[nowEnvVar] = now.Format(time.RFC3339)
}

// Advance moves the pinned clock forward by d.
func (r *CLI) Advance(d time.Duration) {
	r.t.Helper()

	now, err := time.Parse(time.RFC3339, r.Env[nowEnvVar])
	if err != nil {
		r.t.Fatalf("parsing pinned clock: %v", err)
	}

	r.SetNow(now.Add(d))
}

// Run executes the CLI with the given args and returns stdout, stderr, and exit code.
// Args should not include "tt" or "--cwd" - those are added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"tt", "--cwd", r.Dir}, args...)
	code := Run(nil, &outBuf, &errBuf, fullArgs, r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// RunWithInput executes the CLI with stdin and returns stdout, stderr, and exit code.
// stdin must be a string or io.Reader; panics otherwise.
func (r *CLI) RunWithInput(stdin any, args ...string) (string, string, int) {
	var inReader io.Reader
	switch v := stdin.(type) {
	case string:
		inReader = strings.NewReader(v)
	case io.Reader:
		inReader = v
	default:
		panic(fmt.Sprintf("stdin must be string or io.Reader, got %T", stdin))
	}

	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"tt", "--cwd", r.Dir}, args...)
	code := Run(inReader, &outBuf, &errBuf, fullArgs, r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes the CLI and fails the test if the command succeeds.
// Also fails if stdout is not empty. Returns trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code == 0 {
		r.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	if stdout != "" {
		r.t.Fatalf("command %v failed but stdout should be empty\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// DataPath returns the default data file path.
func (r *CLI) DataPath() string {
	return filepath.Join(r.Env["XDG_DATA_HOME"], "tt", tracker.DataFileName)
}

// ReadStore decodes the data file.
func (r *CLI) ReadStore() *tracker.Store {
	r.t.Helper()

	content, err := os.ReadFile(r.DataPath())
	if err != nil {
		r.t.Fatalf("failed to read data file: %v", err)
	}

	s, err := store.Decode(content)
	if err != nil {
		r.t.Fatalf("failed to decode data file: %v", err)
	}

	return s
}

// WriteData writes raw content to the data file.
func (r *CLI) WriteData(content string) {
	r.t.Helper()

	err := os.MkdirAll(filepath.Dir(r.DataPath()), 0o750)
	if err != nil {
		r.t.Fatalf("failed to create data dir: %v", err)
	}

	err = os.WriteFile(r.DataPath(), []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write data file: %v", err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}

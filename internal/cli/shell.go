package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	flag "github.com/spf13/pflag"
)

const (
	shellPrompt      = "tt> "
	shellHistoryFile = "shell_history"
)

// ShellCmd returns the shell command.
func ShellCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Interactive prompt for tt commands",
		Long: `Read tt commands line by line and run them, e.g. "start fix bug #work".
On a terminal the prompt has history and tab completion. Type help for the
command list and exit (or Ctrl-D) to leave.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execShell(ctx, o, a)
		},
	}
}

func execShell(ctx context.Context, o *IO, a *app) error {
	reader := newLineReader(a.stdin, filepath.Join(filepath.Dir(a.cfg.StorageAbs), shellHistoryFile))
	defer reader.Close()

	out := o.Out()

	for ctx.Err() == nil {
		line, err := reader.Prompt(shellPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		reader.AppendHistory(line)

		args := strings.Fields(line)
		if args[0] == "tt" {
			args = args[1:]

			if len(args) == 0 {
				continue
			}
		}

		switch args[0] {
		case "exit", "quit", "q":
			return nil
		case "help", "?":
			printShellHelp(out)
		case "shell", "watch":
			o.ErrPrintln("error:", args[0], "is not available inside the shell")
		default:
			a.dispatch(ctx, out, o.errOut, args)
		}
	}

	return nil
}

func printShellHelp(w io.Writer) {
	fprintln(w, "Commands:")

	for _, cmd := range commands(nil) {
		if name := cmd.Name(); name == "shell" || name == "watch" {
			continue
		}

		fprintln(w, cmd.HelpLine())
	}

	fprintln(w, "  exit                             Leave the shell")
}

// lineReader is the part of [liner.State] the shell uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// newLineReader returns a liner prompt when stdin is a terminal and a plain
// line scanner otherwise.
func newLineReader(stdin io.Reader, historyPath string) lineReader {
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		state.SetCompleter(completeCommand)

		if h, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(h)
			_ = h.Close()
		}

		return &linerReader{State: state, historyPath: historyPath}
	}

	if stdin == nil {
		stdin = strings.NewReader("")
	}

	return &scanReader{scanner: bufio.NewScanner(stdin)}
}

type linerReader struct {
	*liner.State

	historyPath string
}

// Close saves history and restores the terminal.
func (r *linerReader) Close() error {
	if h, err := os.Create(r.historyPath); err == nil {
		_, _ = r.WriteHistory(h)
		_ = h.Close()
	}

	return r.State.Close()
}

type scanReader struct {
	scanner *bufio.Scanner
}

func (r *scanReader) Prompt(string) (string, error) {
	if !r.scanner.Scan() {
		err := r.scanner.Err()
		if err == nil {
			err = io.EOF
		}

		return "", err
	}

	return r.scanner.Text(), nil
}

func (r *scanReader) AppendHistory(string) {}

func (r *scanReader) Close() error {
	return nil
}

func completeCommand(line string) []string {
	var completions []string

	for _, cmd := range commands(nil) {
		if strings.HasPrefix(cmd.Name(), line) {
			completions = append(completions, cmd.Name())
		}
	}

	for _, extra := range []string{"help", "exit"} {
		if strings.HasPrefix(extra, line) {
			completions = append(completions, extra)
		}
	}

	return completions
}

// Package cli implements the command-line interface for tt.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/calvinalkan/timetrack/internal/tracker"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
//
// A signal received on sigCh cancels the context passed to the running
// command; sigCh may be nil.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if len(flags.remaining) == 0 || flags.remaining[0] == "-h" || flags.remaining[0] == helpFlag {
		printUsage(out)

		return 0
	}

	cfg, err := tracker.LoadConfig(tracker.LoadConfigInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		FileOverride:    flags.file,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	a, err := newApp(cfg, env, stdin)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	return a.dispatch(ctx, out, errOut, flags.remaining)
}

// dispatch runs one command line (command name first) and returns its exit code.
func (a *app) dispatch(ctx context.Context, out, errOut io.Writer, args []string) int {
	name := args[0]

	cmd := findCommand(commands(a), name)
	if cmd == nil {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut)

		return 1
	}

	ioCtx := NewIO(out, errOut)

	code := cmd.Run(ctx, ioCtx, args[1:])

	// Finish handles warnings and exit code
	warnCode := ioCtx.Finish()
	if code != 0 {
		return code
	}

	return warnCode
}

// commands returns fresh instances of every command, in help order.
func commands(a *app) []*Command {
	return []*Command{
		StartCmd(a),
		StopCmd(a),
		PauseCmd(a),
		ResumeCmd(a),
		StatusCmd(a),
		ListCmd(a),
		SummaryCmd(a),
		VisualizeCmd(a),
		WatchCmd(a),
		ShellCmd(a),
		ExportCmd(a),
		ClearCmd(a),
		ConfigureCmd(a),
		PrintConfigCmd(a),
	}
}

func findCommand(cmds []*Command, name string) *Command {
	for _, cmd := range cmds {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}

type globalFlags struct {
	workDir    string
	configPath string
	file       string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if arg == "-C" || arg == "--cwd" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", tracker.ErrFlagRequiresArg, arg)
		}

		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", tracker.ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// -f/--file flag (data file)
	if arg == "-f" || arg == "--file" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", tracker.ErrFlagRequiresArg, arg)
		}

		flags.file = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--file="); ok {
		flags.file = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", tracker.ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(writer io.Writer) {
	fprintln(writer, `tt - personal task time tracker

Usage: tt [options] <command> [args]

Options:
  -C, --cwd <dir>       Run as if started in <dir>
  -c, --config <file>   Use specified config file
  -f, --file <file>     Use specified data file

Commands:`)

	for _, cmd := range commands(nil) {
		fprintln(writer, cmd.HelpLine())
	}
}

package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/calvinalkan/timetrack/internal/tracker"

	flag "github.com/spf13/pflag"
)

var errDescriptionRequired = errors.New("task description is required")

// StartCmd returns the start command.
func StartCmd(a *app) *Command {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.SetInterspersed(false)

	return &Command{
		Flags: fs,
		Usage: "start <description>",
		Short: "Start or continue a task",
		Long: `Start the task named by <description>, creating it if needed.

The first #word of the description is the task's category; without one the
task is Uncategorized. An existing Paused or Stopped task with the same name
gets a new time chunk. Any other running task is paused first.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execStart(io, a, args)
		},
	}
}

func execStart(io *IO, a *app, args []string) error {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		return errDescriptionRequired
	}

	eng, err := a.engine(io)
	if err != nil {
		return err
	}

	result := eng.Start(description)

	err = a.save(eng.Store())
	if err != nil {
		return err
	}

	st := newStyles(io.out)

	for _, paused := range result.Paused {
		io.Println("Paused", st.task(paused))
	}

	switch result.Action {
	case tracker.StartCreated:
		io.Println("Started", st.task(result.Ref))
	case tracker.StartAlreadyRunning:
		io.Println("Already running", st.task(result.Ref)+", no changes made")
	case tracker.StartResumed:
		io.Println("Resumed", st.task(result.Ref))
	case tracker.StartRestarted:
		io.Println("Restarted", st.task(result.Ref))
	}

	return nil
}

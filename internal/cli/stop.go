package cli

import (
	"context"
	"errors"

	"github.com/calvinalkan/timetrack/internal/tracker"

	flag "github.com/spf13/pflag"
)

// StopCmd returns the stop command.
func StopCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("stop", flag.ContinueOnError),
		Usage: "stop",
		Short: "Stop the running task",
		Long:  "Close the running task's time chunk and mark it Stopped. Does nothing when no task is running.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execStop(io, a)
		},
	}
}

func execStop(io *IO, a *app) error {
	eng, err := a.engine(io)
	if err != nil {
		return err
	}

	ref, stopErr := eng.Stop()

	// Saved even when nothing was running.
	err = a.save(eng.Store())
	if err != nil {
		return err
	}

	if errors.Is(stopErr, tracker.ErrNoRunningTask) {
		io.Println("No task is currently running.")

		return nil
	}

	st := newStyles(io.out)
	io.Println("Stopped", st.task(ref), "after", tracker.FormatClock(ref.Task.Accrue(a.now())))

	return nil
}

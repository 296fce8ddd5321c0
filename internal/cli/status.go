package cli

import (
	"context"
	"errors"

	"github.com/calvinalkan/timetrack/internal/tracker"

	flag "github.com/spf13/pflag"
)

// StatusCmd returns the status command.
func StatusCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("status", flag.ContinueOnError),
		Usage: "status",
		Short: "Show the running task and its time",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execStatus(io, a)
		},
	}
}

func execStatus(io *IO, a *app) error {
	eng, err := a.engine(io)
	if err != nil {
		return err
	}

	st := newStyles(io.out)

	ref, elapsed, err := eng.Status()
	if errors.Is(err, tracker.ErrNoRunningTask) {
		io.Println(st.faint.Render("Idle") + ": no task is running.")

		if paused, ok := eng.Store().FirstWithStatus(tracker.StatusPaused); ok {
			io.Println("Paused:", st.task(paused))
		}

		return nil
	}

	io.Println(st.status(ref.Task.Status), st.task(ref), tracker.FormatClock(elapsed))

	return nil
}

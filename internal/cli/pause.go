package cli

import (
	"context"
	"errors"

	"github.com/calvinalkan/timetrack/internal/tracker"

	flag "github.com/spf13/pflag"
)

// PauseCmd returns the pause command.
func PauseCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("pause", flag.ContinueOnError),
		Usage: "pause",
		Short: "Pause the running task",
		Long:  "Close the running task's time chunk and mark it Paused so it can be resumed.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execPause(io, a)
		},
	}
}

func execPause(io *IO, a *app) error {
	eng, err := a.engine(io)
	if err != nil {
		return err
	}

	ref, err := eng.Pause()
	if errors.Is(err, tracker.ErrNoRunningTask) {
		io.Println("No task is currently running.")

		return nil
	}

	err = a.save(eng.Store())
	if err != nil {
		return err
	}

	st := newStyles(io.out)
	io.Println("Paused", st.task(ref))

	return nil
}

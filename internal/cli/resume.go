package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/calvinalkan/timetrack/internal/tracker"

	flag "github.com/spf13/pflag"
)

// ResumeCmd returns the resume command.
func ResumeCmd(a *app) *Command {
	fs := flag.NewFlagSet("resume", flag.ContinueOnError)
	fs.SetInterspersed(false)

	return &Command{
		Flags: fs,
		Usage: "resume [description]",
		Short: "Resume a paused task",
		Long: `Resume the most recently paused task, or the paused task named by
[description] (category tag included). Any other running task is paused first.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execResume(io, a, args)
		},
	}
}

func execResume(io *IO, a *app, args []string) error {
	eng, err := a.engine(io)
	if err != nil {
		return err
	}

	ref, err := eng.Resume(strings.TrimSpace(strings.Join(args, " ")))
	if errors.Is(err, tracker.ErrNoPausedTask) {
		io.Println("No paused task found.")

		return nil
	}

	if err != nil {
		return err
	}

	err = a.save(eng.Store())
	if err != nil {
		return err
	}

	st := newStyles(io.out)
	io.Println("Resumed", st.task(ref))

	return nil
}

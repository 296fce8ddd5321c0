package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// ClearCmd returns the clear command.
func ClearCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("clear", flag.ContinueOnError),
		Usage: "clear",
		Short: "Delete all tasks",
		Long:  "Delete every category and task from the data file. Use export first to keep a copy.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execClear(io, a)
		},
	}
}

func execClear(io *IO, a *app) error {
	eng, err := a.engine(io)
	if err != nil {
		return err
	}

	eng.Clear()

	err = a.save(eng.Store())
	if err != nil {
		return err
	}

	io.Println("Cleared all data")

	return nil
}

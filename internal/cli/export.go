package cli

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/calvinalkan/timetrack/internal/store"

	flag "github.com/spf13/pflag"
)

var errExportPathRequired = errors.New("export path is required (use - for stdout)")

// ExportCmd returns the export command.
func ExportCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("export", flag.ContinueOnError),
		Usage: "export <path|->",
		Short: "Write all data as JSON",
		Long:  "Write the whole data file to <path>, or to stdout when <path> is -. The format is the same as the data file.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execExport(io, a, args)
		},
	}
}

func execExport(io *IO, a *app, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errExportPathRequired
	}

	s, err := a.load(io)
	if err != nil {
		return err
	}

	if args[0] == "-" {
		data, encErr := store.Encode(s)
		if encErr != nil {
			return encErr
		}

		_, err = io.Write(data)

		return err
	}

	path := args[0]
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.cfg.EffectiveCwd, path)
	}

	err = a.file.Export(s, path)
	if err != nil {
		return err
	}

	io.Printf("Exported %d tasks to %s\n", s.Len(), path)

	return nil
}

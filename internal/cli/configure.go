package cli

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/calvinalkan/timetrack/internal/tracker"

	flag "github.com/spf13/pflag"
)

const configPerms = 0o600

var errStorageLocationRequired = errors.New("--storage-location is required")

// ConfigureCmd returns the configure command.
func ConfigureCmd(a *app) *Command {
	fs := flag.NewFlagSet("configure", flag.ContinueOnError)
	fs.String("storage-location", "", "Directory to keep tasks.json in")

	return &Command{
		Flags: fs,
		Usage: "configure [flags]",
		Short: "Save settings to the global config",
		Long:  "Save settings to the global config file ($XDG_CONFIG_HOME/tt/config.json or ~/.config/tt/config.json).",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			dir, _ := fs.GetString("storage-location")

			return execConfigure(io, a, dir)
		},
	}
}

func execConfigure(io *IO, a *app, dir string) error {
	if dir == "" {
		return errStorageLocationRequired
	}

	if !filepath.IsAbs(dir) {
		dir = filepath.Join(a.cfg.EffectiveCwd, dir)
	}

	location := filepath.Join(dir, tracker.DataFileName)

	written, err := tracker.SetStorageLocation(a.env, location, func(path string, data []byte) error {
		mkErr := a.fs.MkdirAll(filepath.Dir(path), 0o750)
		if mkErr != nil {
			return mkErr
		}

		return a.fs.WriteFileAtomic(path, data, configPerms)
	})
	if err != nil {
		return err
	}

	io.Println("storage_location=" + location)
	io.Println("Saved to", written)

	return nil
}

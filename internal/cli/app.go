package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/calvinalkan/timetrack/internal/fs"
	"github.com/calvinalkan/timetrack/internal/store"
	"github.com/calvinalkan/timetrack/internal/tracker"
)

// nowEnvVar pins the clock to an RFC3339 instant.
const nowEnvVar = "TT_NOW"

var errInvalidNow = errors.New("invalid " + nowEnvVar)

// app is the state shared by every command of one invocation.
type app struct {
	cfg   tracker.Config
	env   map[string]string
	fs    fs.FS
	file  *store.File
	clock tracker.Clock
	stdin io.Reader
}

func newApp(cfg tracker.Config, env map[string]string, stdin io.Reader) (*app, error) {
	clock, err := clockFromEnv(env)
	if err != nil {
		return nil, err
	}

	fsys := fs.NewReal()

	file, err := store.New(fsys, cfg.StorageAbs)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, env: env, fs: fsys, file: file, clock: clock, stdin: stdin}, nil
}

func clockFromEnv(env map[string]string) (tracker.Clock, error) {
	raw := env[nowEnvVar]
	if raw == "" {
		return tracker.SystemClock(), nil
	}

	pinned, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidNow, err)
	}

	return tracker.ClockFunc(func() time.Time { return pinned }), nil
}

// load reads the store. Unreadable state is moved aside and replaced by an
// empty store, with a warning.
func (a *app) load(o *IO) (*tracker.Store, error) {
	s, err := a.file.Load()
	if err == nil {
		return s, nil
	}

	if !errors.Is(err, store.ErrStateUnreadable) {
		return nil, err
	}

	moved, qErr := a.file.Quarantine()
	if qErr != nil {
		return nil, fmt.Errorf("%w (and %w)", err, qErr)
	}

	action := "starting fresh"
	if moved != "" {
		action = "starting fresh; the old file was moved to " + moved
	}

	o.Warn(err.Error(), action)

	return s, nil
}

// engine loads the store and wraps it in an engine on the app clock.
func (a *app) engine(o *IO) (*tracker.Engine, error) {
	s, err := a.load(o)
	if err != nil {
		return nil, err
	}

	return tracker.NewEngine(s, a.clock), nil
}

func (a *app) save(s *tracker.Store) error {
	err := a.file.Save(s)
	if err != nil {
		return fmt.Errorf("saving %s: %w", a.file.Path(), err)
	}

	return nil
}

// now returns the app clock reading.
func (a *app) now() time.Time {
	return a.clock.Now()
}

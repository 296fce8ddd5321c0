// Package store persists a [tracker.Store] as a single JSON document.
//
// The document shape is:
//
//	{"categorization": {"categories": {"#work": [ {task}, ... ], ...}}}
//
// where each task is
//
//	{"name": "...", "time_chunks": [{"start_time": RFC3339, "end_time": RFC3339|null}],
//	 "paused_duration": <seconds>, "status": "Running"|"Paused"|"Stopped"}
//
// There is no locking: two processes saving the same file race and the last
// writer wins.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calvinalkan/timetrack/internal/fs"
	"github.com/calvinalkan/timetrack/internal/tracker"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// QuarantineSuffix is appended to an unreadable data file moved aside by
// [File.Quarantine].
const QuarantineSuffix = ".corrupt"

// document is the top-level persisted object.
type document struct {
	Categorization *tracker.Store `json:"categorization"`
}

// File is the JSON data file holding the whole store.
type File struct {
	fs   fs.FS
	path string
}

// New returns a File at path accessed through fsys.
func New(fsys fs.FS, path string) (*File, error) {
	if path == "" {
		return nil, ErrPathEmpty
	}

	if fsys == nil {
		fsys = fs.NewReal()
	}

	return &File{fs: fsys, path: filepath.Clean(path)}, nil
}

// Path returns the data file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the data file.
//
// A missing file yields an empty store and no error. A file that cannot be
// read, decoded, or that violates the task invariants yields an empty store
// and an error wrapping [ErrStateUnreadable], so callers can start fresh
// while telling the user.
func (f *File) Load() (*tracker.Store, error) {
	data, err := f.fs.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tracker.NewStore(), nil
		}

		return tracker.NewStore(), fmt.Errorf("%w: %s: %w", ErrStateUnreadable, f.path, err)
	}

	store, err := Decode(data)
	if err != nil {
		return tracker.NewStore(), fmt.Errorf("%w: %s: %w", ErrStateUnreadable, f.path, err)
	}

	return store, nil
}

// Save writes the whole store atomically, creating parent directories.
func (f *File) Save(store *tracker.Store) error {
	data, err := Encode(store)
	if err != nil {
		return err
	}

	return f.write(f.path, data)
}

// Export writes the whole store to path in the same format as [File.Save].
func (f *File) Export(store *tracker.Store, path string) error {
	data, err := Encode(store)
	if err != nil {
		return err
	}

	return f.write(path, data)
}

// Quarantine moves an unreadable data file to path+[QuarantineSuffix] so a
// following Save does not destroy it. Returns the new path, or "" if there
// was no file to move.
func (f *File) Quarantine() (string, error) {
	exists, err := f.fs.Exists(f.path)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", f.path, err)
	}

	if !exists {
		return "", nil
	}

	target := f.path + QuarantineSuffix

	err = f.fs.Rename(f.path, target)
	if err != nil {
		return "", fmt.Errorf("moving unreadable state aside: %w", err)
	}

	return target, nil
}

func (f *File) write(path string, data []byte) error {
	err := f.fs.MkdirAll(filepath.Dir(path), dirPerms)
	if err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	err = f.fs.WriteFileAtomic(path, data, filePerms)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// Encode renders store as an indented JSON document.
func Encode(store *tracker.Store) ([]byte, error) {
	if store == nil {
		store = tracker.NewStore()
	}

	if store.Categories == nil {
		store.Categories = make(map[string][]*tracker.Task)
	}

	data, err := json.MarshalIndent(document{Categorization: store}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding store: %w", err)
	}

	return append(data, '\n'), nil
}

// Decode parses a JSON document and validates every task.
func Decode(data []byte) (*tracker.Store, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var doc document

	err := dec.Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("decoding store: %w", err)
	}

	if doc.Categorization == nil {
		return nil, ErrMissingCategorization
	}

	store := doc.Categorization
	if store.Categories == nil {
		store.Categories = make(map[string][]*tracker.Task)
	}

	err = store.Validate()
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Package fs provides the filesystem operations the tracker needs behind an
// interface, so persistence can be exercised against injected failures.
//
// The main types are:
//   - [FS]: interface for filesystem operations
//   - [Real]: production implementation using [os] and atomic writes
//
// Example usage:
//
//	fsys := fs.NewReal()
//	data, err := fsys.ReadFile("tasks.json")
//	if err != nil {
//	    return err
//	}
package fs

import (
	"os"
)

// FS defines filesystem operations for reading, writing, and managing files.
//
// All methods mirror their [os] package equivalents except
// [FS.WriteFileAtomic] and [FS.Exists].
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so readers never observe a partial file.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	// No error if the directory already exists.
	MkdirAll(path string, perm os.FileMode) error

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Rename moves/renames a file or directory. See [os.Rename].
	// Atomic on the same filesystem.
	Rename(oldpath, newpath string) error
}

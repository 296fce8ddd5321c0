package fs

import (
	"errors"
	"os"
	"sync"
)

// Op names a [FS] method for fault injection.
type Op string

// Injectable operations.
const (
	OpReadFile        Op = "ReadFile"
	OpWriteFileAtomic Op = "WriteFileAtomic"
	OpMkdirAll        Op = "MkdirAll"
	OpExists          Op = "Exists"
	OpRename          Op = "Rename"
)

// InjectedError marks an error as intentionally injected by [Faulty].
//
// It wraps the underlying error so errors.Is/As continue to work.
type InjectedError struct {
	Op  Op
	Err error
}

// Error returns the underlying error's message.
func (e *InjectedError) Error() string {
	return "injected " + string(e.Op) + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected by [Faulty].
func IsInjected(err error) bool {
	var injected *InjectedError

	return errors.As(err, &injected)
}

// Faulty wraps an [FS] and fails selected operations on demand.
// It is safe for concurrent use.
type Faulty struct {
	inner FS

	mu     sync.Mutex
	faults map[Op]error
	calls  map[Op]int
}

// NewFaulty returns a [Faulty] passing every call through to inner until
// [Faulty.Fail] is called.
func NewFaulty(inner FS) *Faulty {
	return &Faulty{
		inner:  inner,
		faults: make(map[Op]error),
		calls:  make(map[Op]int),
	}
}

// Fail makes every subsequent call of op return err wrapped in [InjectedError].
// A nil err clears the fault.
func (f *Faulty) Fail(op Op, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err == nil {
		delete(f.faults, op)

		return
	}

	f.faults[op] = err
}

// Calls returns how many times op was invoked, including failed calls.
func (f *Faulty) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[op]
}

func (f *Faulty) check(op Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[op]++

	if err, ok := f.faults[op]; ok {
		return &InjectedError{Op: op, Err: err}
	}

	return nil
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if err := f.check(OpReadFile); err != nil {
		return nil, err
	}

	return f.inner.ReadFile(path)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := f.check(OpWriteFileAtomic); err != nil {
		return err
	}

	return f.inner.WriteFileAtomic(path, data, perm)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(OpMkdirAll); err != nil {
		return err
	}

	return f.inner.MkdirAll(path, perm)
}

func (f *Faulty) Exists(path string) (bool, error) {
	if err := f.check(OpExists); err != nil {
		return false, err
	}

	return f.inner.Exists(path)
}

func (f *Faulty) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename); err != nil {
		return err
	}

	return f.inner.Rename(oldpath, newpath)
}

var _ FS = (*Faulty)(nil)

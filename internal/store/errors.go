package store

import "errors"

// ErrStateUnreadable reports a data file that exists but could not be read
// or decoded. Load still returns an empty store alongside it.
var ErrStateUnreadable = errors.New("state unreadable")

// ErrPathEmpty reports a File created without a path.
var ErrPathEmpty = errors.New("storage path is empty")

// ErrMissingCategorization reports a document without the top-level
// "categorization" object.
var ErrMissingCategorization = errors.New("missing categorization")

/*
Package prefs provides the flat string-to-string preference mappings that the secure store persists into.

A Prefs implementation buffers writes in memory until Flush is called, which is the only operation expected to block on I/O.
No implementation offers multi-key transactions to callers.
*/
package prefs

import (
	"errors"
	"io"
	"log"
)

var (
	ErrClosed = errors.New("preferences have been closed")
)

// Prefs is a flat mapping of string keys to string values.
type Prefs interface {
	// GetString returns the value stored for key, or def if there is none.
	GetString(key, def string) string
	// SetString stores value under key.
	SetString(key, value string) error
	// HasKey reports whether key has a value.
	HasKey(key string) bool
	// DeleteKey removes key. Removing a missing key is not an error.
	DeleteKey(key string) error
	// DeleteAll removes every key.
	DeleteAll() error
	// Flush writes buffered changes to the underlying medium.
	Flush() error
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

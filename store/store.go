// Package store defines SecretStore, the persistent key→value mapping the
// auth engine and the GC registry read and write through, plus the pluggable backends that implement it: an
// in-memory mirror for tests, bbolt as the primary crash-consistent
// embedded engine, and Redis/Postgres/MongoDB alternates for deployments
// that already run one of those stores.
package store

import (
	"context"
	"errors"
)

// Result reports the outcome of a store operation. The auth package maps
// these onto its own broader Status enum alongside authentication-level
// outcomes.
type Result uint8

const (
	ResultUnknown Result = iota
	ResultInserted
	ResultModified
	ResultDeleted
	ResultKeyFound
	ResultKeyNotFound
	ResultFieldDropped
	ResultFieldNotFound
	ResultEmpty
)

func (r Result) String() string {
	switch r {
	case ResultInserted:
		return "Inserted"
	case ResultModified:
		return "Modified"
	case ResultDeleted:
		return "Deleted"
	case ResultKeyFound:
		return "KeyFound"
	case ResultKeyNotFound:
		return "KeyNotFound"
	case ResultFieldDropped:
		return "FieldDropped"
	case ResultFieldNotFound:
		return "FieldNotFound"
	case ResultEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// ErrClosed reports an operation attempted after Close. The backends in
// this package do not track closure and never return it.
var ErrClosed = errors.New("store: backend closed")

// SecretStore is the crash-consistent key→value mapping every backend
// implements. Keys and values are opaque byte slices; callers (the auth
// engine, the GC registry) impose their own encoding.
type SecretStore interface {
	// Get retrieves the value stored under key. ResultKeyNotFound with a
	// nil error reports a clean miss; a non-nil error reports a backend
	// failure.
	Get(ctx context.Context, key []byte) ([]byte, Result, error)

	// Set writes key=value, returning ResultInserted for a new key or
	// ResultModified for an overwrite.
	Set(ctx context.Context, key, value []byte) (Result, error)

	// Remove deletes key, returning ResultDeleted or ResultKeyNotFound.
	Remove(ctx context.Context, key []byte) (Result, error)

	// Check reports whether key exists, without fetching its value.
	Check(ctx context.Context, key []byte) (bool, error)

	// List returns every key currently stored. Backends sized for
	// production traffic may page internally, but the interface presents
	// the full set.
	List(ctx context.Context) ([][]byte, error)

	// Clear removes every key. Intended for test teardown, not routine
	// operation.
	Clear(ctx context.Context) error

	// Close releases any underlying connection or file handle.
	Close() error
}

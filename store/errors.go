package store

import "errors"

var (
	// ErrBackendUnavailable reports a backend that cannot currently serve
	// requests (connection lost, file locked by another process, etc).
	ErrBackendUnavailable = errors.New("store: backend unavailable")
)

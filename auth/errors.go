package auth

import "errors"

var (
	ErrNilEngine = errors.New("auth: engine not initialized")
)

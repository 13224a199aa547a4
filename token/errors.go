package token

import "errors"

// Sentinel errors returned by the token flavor codecs (spec §7).
var (
	ErrMalformedToken  = errors.New("token: malformed presented token")
	ErrUnknownFlavor   = errors.New("token: unrecognized token flavor")
	ErrProofMismatch   = errors.New("token: proof does not match stored record")
	ErrIdentityMissing = errors.New("token: identity must not be empty")
)

// Package csprng generates lowercase alphanumeric strings of fixed lengths
// drawn from a cryptographically secure source. All secret material in
// SchemeGuardian — token proofs, salts, random keys — is generated here.
//
// crypto/rand reads from the platform's non-blocking CSPRNG (getrandom(2)
// on Linux with GRND_NONBLOCK semantics once the pool is seeded), so calls
// here do not block a caller's scheduler for more than microseconds.
package csprng

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Common fixed lengths used across the token and passphrase engines.
const (
	ProofLength  = 24
	SaltLength   = 64
	LenShort     = 24
	LenMedium    = 32
	LenLong      = 64
	LenExtended  = 128
	LenDouble    = 256
	LenQuadruple = 512
)

var alphabetSize = big.NewInt(int64(len(alphabet)))

// String returns a random lowercase alphanumeric string of exactly n bytes.
func String(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("csprng: length must be positive, got %d", n)
	}

	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("csprng: failed to read random source: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// Proof returns a fresh 24-character proof, used as both the anti-replay
// witness in composite/hash tokens and the AEAD nonce material for sealed
// tokens.
func Proof() (string, error) {
	return String(ProofLength)
}

// Salt returns a fresh 64-character salt for passphrase hashing.
func Salt() (string, error) {
	return String(SaltLength)
}

// Bytes returns n cryptographically random bytes, used where raw key
// material rather than an alphanumeric string is required.
func Bytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("csprng: length must be positive, got %d", n)
	}
	out := make([]byte, n)
	if _, err := rand.Read(out); err != nil {
		return nil, fmt.Errorf("csprng: failed to read random source: %w", err)
	}
	return out, nil
}

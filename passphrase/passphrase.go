// Package passphrase implements the issue/authenticate pair that sits
// underneath the auth API's human-facing credentials: Argon2i hashing
// with a pepper folded in via cryptocore, independent of the token
// engine's proof-based machinery.
package passphrase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/suleymanmyradov/schemeguardian/cryptocore"
	"github.com/suleymanmyradov/schemeguardian/csprng"
)

// MaxLength bounds a passphrase to 1 KiB; anything past that is rejected
// outright rather than hashed (spec §4.6).
const MaxLength = 1024

var (
	ErrPassphraseEmpty    = errors.New("passphrase: passphrase must not be empty")
	ErrPassphraseTooLarge = errors.New("passphrase: passphrase exceeds maximum length")
)

// zero overwrites b in place; called on every exit path that touched a
// caller-supplied passphrase buffer.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Issue validates passphrase and returns its Argon2i hash, peppered with
// pepper and salted with a freshly generated 64-character salt. The
// passphrase buffer is zeroed before Issue returns, on every path.
func Issue(passphrase []byte, pepper []byte) (string, error) {
	defer zero(passphrase)

	if len(strings.TrimSpace(string(passphrase))) == 0 {
		return "", ErrPassphraseEmpty
	}
	if len(passphrase) > MaxLength {
		return "", ErrPassphraseTooLarge
	}

	salt, err := csprng.Salt()
	if err != nil {
		return "", fmt.Errorf("passphrase: failed to generate salt: %w", err)
	}

	encoded, err := cryptocore.HashPassphrase(passphrase, []byte(salt), pepper)
	if err != nil {
		return "", fmt.Errorf("passphrase: %w", err)
	}
	return encoded, nil
}

// Authenticate validates passphrase against stored, the encoded hash
// produced by Issue. The passphrase buffer is zeroed before Authenticate
// returns, on every path.
func Authenticate(passphrase []byte, pepper []byte, stored string) (bool, error) {
	defer zero(passphrase)

	if len(strings.TrimSpace(string(passphrase))) == 0 {
		return false, ErrPassphraseEmpty
	}
	if len(passphrase) > MaxLength {
		return false, ErrPassphraseTooLarge
	}

	ok, err := cryptocore.VerifyPassphrase(passphrase, pepper, stored)
	if err != nil {
		return false, fmt.Errorf("passphrase: %w", err)
	}
	return ok, nil
}

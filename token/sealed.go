package token

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/suleymanmyradov/schemeguardian/cryptocore"
)

// sealedSeparator divides the plaintext identity prefix from the
// base64url ciphertext in a sealed token's wire form. It must not collide
// with the composite flavor's ":::" separator, so detection never has to
// guess.
const sealedSeparator = ":"

// SealToken encrypts c's serialized record under aeadKey, using c.Proof as
// the XChaCha20-Poly1305 nonce (spec §6.3: the nonce is never carried on
// the wire, only the identity is). The returned wire form is
// "<identity>:<base64url-ciphertext>".
func SealToken(c TokenContents, aeadKey []byte) (string, error) {
	if len(c.Identity) == 0 {
		return "", ErrIdentityMissing
	}
	if strings.Contains(c.Identity, sealedSeparator) {
		return "", fmt.Errorf("token: identity must not contain %q", sealedSeparator)
	}

	serialized, err := c.Encode()
	if err != nil {
		return "", err
	}

	ciphertext, err := cryptocore.Seal(aeadKey, []byte(c.Proof), serialized)
	if err != nil {
		return "", fmt.Errorf("token: seal: %w", err)
	}

	return c.Identity + sealedSeparator + base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// ParseSealedWire splits a sealed token's wire form into its plaintext
// identity and raw ciphertext, without decrypting anything.
func ParseSealedWire(wire string) (identity string, ciphertext []byte, err error) {
	idx := strings.Index(wire, sealedSeparator)
	if idx < 0 {
		return "", nil, fmt.Errorf("%w: missing separator", ErrMalformedToken)
	}
	identity = wire[:idx]
	if len(identity) == 0 {
		return "", nil, ErrIdentityMissing
	}
	ciphertext, err = base64.RawURLEncoding.DecodeString(wire[idx+1:])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return identity, ciphertext, nil
}

// OpenSealedToken decrypts ciphertext (as produced by SealToken) using
// nonce — the proof the issuing record was sealed with, looked up by the
// caller from the identity-indexed store — and aeadKey. It additionally
// confirms the decrypted record's own Identity matches the wire's
// plaintext prefix, rejecting a ciphertext replayed under a different
// identity label.
func OpenSealedToken(identity string, ciphertext []byte, nonce string, aeadKey []byte) (TokenContents, error) {
	plaintext, err := cryptocore.Open(aeadKey, []byte(nonce), ciphertext)
	if err != nil {
		return TokenContents{}, fmt.Errorf("token: open: %w", err)
	}

	contents, err := Decode(plaintext)
	if err != nil {
		return TokenContents{}, err
	}
	if contents.Identity != identity {
		return TokenContents{}, fmt.Errorf("%w: identity mismatch", ErrMalformedToken)
	}
	return contents, nil
}

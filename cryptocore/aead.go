// Package cryptocore holds the three deterministic cryptographic
// primitives the token core builds on: AEAD seal/open (XChaCha20-Poly1305),
// a keyed BLAKE3 hash, and Argon2i password hashing.
package cryptocore

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required length, in bytes, of every AEAD key and keyed
// hash key used across SchemeGuardian.
const KeySize = 32

// NonceSize is the required length, in bytes, of the XChaCha20-Poly1305
// nonce. Sealed tokens draw this directly from a TokenContents proof.
const NonceSize = chacha20poly1305.NonceSizeX

// Seal authenticates and encrypts plaintext under key using XChaCha20-
// Poly1305, with nonce supplied by the caller (the token engine derives it
// from a TokenContents proof). Returns the ciphertext with the Poly1305 tag
// appended, per the underlying AEAD's convention.
func Seal(key, nonce, plaintext []byte) ([]byte, error) {
	if len(key) < KeySize {
		return nil, fmt.Errorf("seal: %w: got %d bytes, want %d", ErrKeyTooShort, len(key), KeySize)
	}
	if len(key) > KeySize {
		return nil, fmt.Errorf("seal: %w: got %d bytes, want %d", ErrKeyTooLong, len(key), KeySize)
	}
	if len(nonce) < NonceSize {
		return nil, fmt.Errorf("seal: %w: got %d bytes, want %d", ErrNonceTooShort, len(nonce), NonceSize)
	}
	if len(nonce) > NonceSize {
		return nil, fmt.Errorf("seal: %w: got %d bytes, want %d", ErrNonceTooLong, len(nonce), NonceSize)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("seal: %w: %v", ErrEncryptionFailed, err)
	}

	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open reverses Seal, verifying the Poly1305 tag before returning the
// plaintext. Any tag mismatch is reported as ErrDecryptionFailed, distinct
// from key/nonce length errors.
func Open(key, nonce, ciphertext []byte) ([]byte, error) {
	if len(key) < KeySize {
		return nil, fmt.Errorf("open: %w: got %d bytes, want %d", ErrKeyTooShort, len(key), KeySize)
	}
	if len(key) > KeySize {
		return nil, fmt.Errorf("open: %w: got %d bytes, want %d", ErrKeyTooLong, len(key), KeySize)
	}
	if len(nonce) < NonceSize {
		return nil, fmt.Errorf("open: %w: got %d bytes, want %d", ErrNonceTooShort, len(nonce), NonceSize)
	}
	if len(nonce) > NonceSize {
		return nil, fmt.Errorf("open: %w: got %d bytes, want %d", ErrNonceTooLong, len(nonce), NonceSize)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("open: %w: %v", ErrDecryptionFailed, err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("open: %w", ErrDecryptionFailed)
	}
	return plaintext, nil
}

package token

import (
	"fmt"
	"math/big"

	"golang.org/x/crypto/chacha20poly1305"
)

// brancaVersion is the single version byte every Branca token begins with.
const brancaVersion = 0xBA

// brancaAlphabet is the base62 alphabet Branca encodes its binary envelope
// with.
const brancaAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DecodeBranca reads a token issued by the predecessor system's Branca
// format: version byte, 4-byte big-endian Unix timestamp, 24-byte nonce,
// then an XChaCha20-Poly1305 ciphertext, the whole envelope base62-encoded.
// It is read-only — this package never issues Branca tokens. DetectFlavor,
// ParseCredential and the auth package do not recognize Branca tokens; a
// caller reads one by calling DecodeBranca directly.
func DecodeBranca(encoded string, key []byte) (payload []byte, issuedAt uint32, err error) {
	raw, err := base62Decode(encoded)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if len(raw) < 1+4+24 {
		return nil, 0, fmt.Errorf("%w: envelope too short", ErrMalformedToken)
	}
	if raw[0] != brancaVersion {
		return nil, 0, fmt.Errorf("%w: unrecognized version byte", ErrMalformedToken)
	}

	issuedAt = uint32(raw[1])<<24 | uint32(raw[2])<<16 | uint32(raw[3])<<8 | uint32(raw[4])
	nonce := raw[5:29]
	ciphertext := raw[29:]

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, 0, fmt.Errorf("token: branca: %w", err)
	}
	// Branca authenticates the version+timestamp header as additional data.
	payload, err = aead.Open(nil, nonce, ciphertext, raw[:5])
	if err != nil {
		return nil, 0, fmt.Errorf("%w: branca tag verification failed", ErrMalformedToken)
	}
	return payload, issuedAt, nil
}

func base62Decode(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("empty token")
	}
	base := big.NewInt(int64(len(brancaAlphabet)))
	n := new(big.Int)
	for _, r := range s {
		idx := indexByte(brancaAlphabet, byte(r))
		if idx < 0 {
			return nil, fmt.Errorf("invalid base62 character %q", r)
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(idx)))
	}
	return n.Bytes(), nil
}

func indexByte(alphabet string, b byte) int {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == b {
			return i
		}
	}
	return -1
}

package cryptocore

import (
	"fmt"

	"lukechampine.com/blake3"
)

// DigestSize is the length, in bytes, of a keyed BLAKE3 digest produced by
// KeyedHash.
const DigestSize = 32

// KeyedHash computes the 32-byte keyed BLAKE3 digest of data under key.
// The token engine feeds it identity‖timestamp-bytes‖role-header‖
// lease-header to produce a hash-flavor token's wire digest.
func KeyedHash(key, data []byte) ([32]byte, error) {
	var out [32]byte
	if len(key) < KeySize {
		return out, fmt.Errorf("keyedhash: %w: got %d bytes, want %d", ErrKeyTooShort, len(key), KeySize)
	}
	if len(key) > KeySize {
		return out, fmt.Errorf("keyedhash: %w: got %d bytes, want %d", ErrKeyTooLong, len(key), KeySize)
	}

	hasher, err := blake3.New(DigestSize, key)
	if err != nil {
		return out, fmt.Errorf("keyedhash: failed to initialize hasher: %w", err)
	}
	if _, err := hasher.Write(data); err != nil {
		return out, fmt.Errorf("keyedhash: failed to write input: %w", err)
	}
	copy(out[:], hasher.Sum(nil))
	return out, nil
}

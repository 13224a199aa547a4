package cryptocore

import "errors"

// Sentinel errors for the CryptoError taxonomy (spec §7). Callers use
// errors.Is to distinguish them from generic wrapped failures.
var (
	ErrKeyTooShort      = errors.New("cryptocore: key too short")
	ErrKeyTooLong       = errors.New("cryptocore: key too long")
	ErrNonceTooShort    = errors.New("cryptocore: nonce too short")
	ErrNonceTooLong     = errors.New("cryptocore: nonce too long")
	ErrEncryptionFailed = errors.New("cryptocore: encryption failed")
	ErrDecryptionFailed = errors.New("cryptocore: decryption failed")
)

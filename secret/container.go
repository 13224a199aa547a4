// Package secret holds the process-wide master key container: the
// default/argon2/aead 32-byte secrets loaded once at startup by the config
// loader and shared by the token engine and passphrase engine. It is the
// one piece of global mutable state the core keeps (design note in
// SPEC_FULL.md), and its construction is deliberately a boundary interface
// so tests can inject an alternate container instead of touching process
// globals.
package secret

import (
	"fmt"
	"sync"
)

// KeySize is the required length of every master key.
const KeySize = 32

// Keys holds the three master keys in opaque, independently-sized buffers.
// The zero value is not usable; construct with New.
type Keys struct {
	mu      sync.RWMutex
	def     []byte
	argon2  []byte
	aead    []byte
	zeroed  bool
}

// New validates and wraps the three master keys. Each must be exactly
// KeySize bytes (spec §3 invariant 4).
func New(defaultKey, argon2Key, aeadKey []byte) (*Keys, error) {
	for name, k := range map[string][]byte{"default": defaultKey, "argon2": argon2Key, "aead": aeadKey} {
		if len(k) != KeySize {
			return nil, fmt.Errorf("secret: %s key must be exactly %d bytes, got %d", name, KeySize, len(k))
		}
	}

	k := &Keys{
		def:    append([]byte(nil), defaultKey...),
		argon2: append([]byte(nil), argon2Key...),
		aead:   append([]byte(nil), aeadKey...),
	}
	return k, nil
}

// Default returns the default master key.
func (k *Keys) Default() []byte { return k.read(&k.def) }

// Argon2 returns the Argon2i pepper key.
func (k *Keys) Argon2() []byte { return k.read(&k.argon2) }

// AEAD returns the AEAD sealing key.
func (k *Keys) AEAD() []byte { return k.read(&k.aead) }

func (k *Keys) read(field *[]byte) []byte {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.zeroed {
		return nil
	}
	out := make([]byte, len(*field))
	copy(out, *field)
	return out
}

// Destroy zeroes all key material in place. Safe to call multiple times.
func (k *Keys) Destroy() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.zeroed {
		return
	}
	zero(k.def)
	zero(k.argon2)
	zero(k.aead)
	k.zeroed = true
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

var (
	globalMu   sync.RWMutex
	globalKeys *Keys
	initOnce   sync.Once
)

// Init lazily installs the process-wide key container. Only the first
// call takes effect; subsequent calls are no-ops, mirroring the
// lazily-initialized global the design notes call for. Use InitForTest to
// override this in tests.
func Init(k *Keys) {
	initOnce.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		globalKeys = k
	})
}

// InitForTest unconditionally replaces the process-wide container,
// bypassing the once-only guard. Intended for test setup only.
func InitForTest(k *Keys) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalKeys = k
}

// Global returns the process-wide key container, or an error if Init has
// not yet been called.
func Global() (*Keys, error) {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalKeys == nil {
		return nil, fmt.Errorf("secret: global key container not initialized")
	}
	return globalKeys, nil
}

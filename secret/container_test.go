package secret

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(b byte) []byte {
	k := make([]byte, KeySize)
	for i := range k {
		k[i] = b
	}
	return k
}

func TestNewRejectsWrongSizedKeys(t *testing.T) {
	_, err := New(key(1)[:KeySize-1], key(2), key(3))
	assert.Error(t, err)
}

func TestNewCopiesInputBuffers(t *testing.T) {
	def := key(1)
	k, err := New(def, key(2), key(3))
	require.NoError(t, err)

	def[0] = 0xFF
	assert.Equal(t, byte(1), k.Default()[0], "Keys must not alias caller-owned buffers")
}

func TestAccessorsReturnIndependentCopies(t *testing.T) {
	k, err := New(key(1), key(2), key(3))
	require.NoError(t, err)

	got := k.Default()
	got[0] = 0xFF
	assert.Equal(t, byte(1), k.Default()[0], "mutating a returned copy must not affect stored state")
}

func TestDestroyZeroesAllKeys(t *testing.T) {
	k, err := New(key(1), key(2), key(3))
	require.NoError(t, err)

	k.Destroy()

	assert.Nil(t, k.Default())
	assert.Nil(t, k.Argon2())
	assert.Nil(t, k.AEAD())
}

func TestDestroyIsIdempotent(t *testing.T) {
	k, err := New(key(1), key(2), key(3))
	require.NoError(t, err)

	k.Destroy()
	assert.NotPanics(t, func() { k.Destroy() })
}

func TestGlobalBeforeInitErrors(t *testing.T) {
	globalMu.Lock()
	globalKeys = nil
	globalMu.Unlock()

	_, err := Global()
	assert.Error(t, err)
}

func TestInitForTestOverridesGlobal(t *testing.T) {
	k1, err := New(key(1), key(2), key(3))
	require.NoError(t, err)
	InitForTest(k1)

	got, err := Global()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(got.Default(), key(1)))

	k2, err := New(key(9), key(9), key(9))
	require.NoError(t, err)
	InitForTest(k2)

	got, err = Global()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(got.Default(), key(9)))
}

package cryptocore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key32() []byte { return bytes.Repeat([]byte("k"), KeySize) }
func nonce24() []byte { return bytes.Repeat([]byte("n"), NonceSize) }

func TestSealOpenRoundTrip(t *testing.T) {
	key := key32()
	nonce := nonce24()
	plaintext := []byte("the quick brown fox")

	ciphertext, err := Seal(key, nonce, plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	opened, err := Open(key, nonce, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	key := key32()
	nonce := nonce24()
	ciphertext, err := Seal(key, nonce, []byte("payload"))
	require.NoError(t, err)

	tampered := append([]byte{}, ciphertext...)
	tampered[0] ^= 0xFF

	_, err = Open(key, nonce, tampered)
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestSealRejectsBadKeyLength(t *testing.T) {
	_, err := Seal(bytes.Repeat([]byte("k"), 16), nonce24(), []byte("x"))
	require.ErrorIs(t, err, ErrKeyTooShort)

	_, err = Seal(bytes.Repeat([]byte("k"), 64), nonce24(), []byte("x"))
	require.ErrorIs(t, err, ErrKeyTooLong)
}

func TestSealRejectsBadNonceLength(t *testing.T) {
	_, err := Seal(key32(), bytes.Repeat([]byte("n"), 8), []byte("x"))
	require.ErrorIs(t, err, ErrNonceTooShort)

	_, err = Seal(key32(), bytes.Repeat([]byte("n"), 48), []byte("x"))
	require.ErrorIs(t, err, ErrNonceTooLong)
}

func TestKeyedHashIsDeterministic(t *testing.T) {
	key := key32()
	data := []byte("identity:::timestamp:::role:::lease")

	a, err := KeyedHash(key, data)
	require.NoError(t, err)
	b, err := KeyedHash(key, data)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestKeyedHashDiffersByKey(t *testing.T) {
	data := []byte("same input")

	a, err := KeyedHash(key32(), data)
	require.NoError(t, err)
	b, err := KeyedHash(bytes.Repeat([]byte("z"), KeySize), data)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashAndVerifyPassphrase(t *testing.T) {
	pepper := bytes.Repeat([]byte("k"), KeySize)
	salt := bytes.Repeat([]byte("s"), 64)

	encoded, err := HashPassphrase([]byte("hunter2"), salt, pepper)
	require.NoError(t, err)

	ok, err := VerifyPassphrase([]byte("hunter2"), pepper, encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassphrase([]byte("hunter3"), pepper, encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassphraseRejectsMalformedEncoding(t *testing.T) {
	_, err := VerifyPassphrase([]byte("x"), key32(), "not-an-encoded-hash")
	require.Error(t, err)
}

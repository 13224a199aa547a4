package passphrase

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pepper() []byte { return bytes.Repeat([]byte("p"), 32) }

func TestIssueAndAuthenticateRoundTrip(t *testing.T) {
	encoded, err := Issue([]byte("correct horse battery staple"), pepper())
	require.NoError(t, err)

	ok, err := Authenticate([]byte("correct horse battery staple"), pepper(), encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Authenticate([]byte("wrong passphrase"), pepper(), encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIssueRejectsEmpty(t *testing.T) {
	_, err := Issue([]byte("   "), pepper())
	require.ErrorIs(t, err, ErrPassphraseEmpty)
}

func TestIssueRejectsTooLarge(t *testing.T) {
	huge := bytes.Repeat([]byte("x"), MaxLength+1)
	_, err := Issue(huge, pepper())
	require.ErrorIs(t, err, ErrPassphraseTooLarge)
}

func TestAuthenticateRejectsEmpty(t *testing.T) {
	_, err := Authenticate([]byte(""), pepper(), "irrelevant")
	require.ErrorIs(t, err, ErrPassphraseEmpty)
}

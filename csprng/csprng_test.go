package csprng

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alphanumeric = regexp.MustCompile(`^[0-9a-z]+$`)

func TestStringLengthsAndAlphabet(t *testing.T) {
	for _, n := range []int{LenShort, LenMedium, LenLong, LenExtended, LenDouble, LenQuadruple} {
		s, err := String(n)
		require.NoError(t, err)
		assert.Len(t, s, n)
		assert.Regexp(t, alphanumeric, s)
	}
}

func TestProofIsUnique(t *testing.T) {
	a, err := Proof()
	require.NoError(t, err)
	b, err := Proof()
	require.NoError(t, err)

	assert.Len(t, a, 24)
	assert.NotEqual(t, a, b)
}

func TestSaltLength(t *testing.T) {
	salt, err := Salt()
	require.NoError(t, err)
	assert.Len(t, salt, 64)
}

func TestStringRejectsNonPositiveLength(t *testing.T) {
	_, err := String(0)
	require.Error(t, err)
	_, err = String(-5)
	require.Error(t, err)
}

func TestBytesLength(t *testing.T) {
	b, err := Bytes(32)
	require.NoError(t, err)
	assert.Len(t, b, 32)
}

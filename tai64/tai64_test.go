package tai64

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripBytes(t *testing.T) {
	ts := FromTime(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))

	b := ts.Bytes()
	parsed, err := Parse(b[:])
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}

func TestRoundTripLabel(t *testing.T) {
	ts := Now()

	label := ts.String()
	parsed, err := ParseLabel(label)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}

func TestOrdering(t *testing.T) {
	earlier := FromTime(time.Now())
	later := earlier.Add(10 * time.Second)

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.Equal(later))
}

func TestParseRejectsShortInput(t *testing.T) {
	_, err := Parse([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestParseLabelRejectsBadPrefix(t *testing.T) {
	_, err := ParseLabel("not-a-label")
	require.Error(t, err)
}

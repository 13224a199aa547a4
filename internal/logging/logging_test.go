package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAppendsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SchemeGuardian.log")
	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	w.Log(KindAuth, "token issued", nil)
	w.Log(KindStore, "write failed", assert.AnError)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "auth token issued")
	assert.Contains(t, lines[1], "cause=")
}

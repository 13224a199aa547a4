package configload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConf(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "SchemeGuardianConf.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadValidConfigWithAllKeys(t *testing.T) {
	key := strings.Repeat("k", 32)
	path := writeConf(t, `
[secrets]
default = "`+key+`"
argon2 = "`+strings.Repeat("a", 32)+`"
aead = "`+strings.Repeat("e", 32)+`"
`)

	keys, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(key), keys.Default())
	assert.Equal(t, []byte(strings.Repeat("a", 32)), keys.Argon2())
	assert.Equal(t, []byte(strings.Repeat("e", 32)), keys.AEAD())
}

func TestLoadDefaultsOptionalKeys(t *testing.T) {
	key := strings.Repeat("k", 32)
	path := writeConf(t, `
[secrets]
default = "`+key+`"
`)

	keys, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(key), keys.Argon2())
	assert.Equal(t, []byte(key), keys.AEAD())
}

func TestLoadRejectsShortKey(t *testing.T) {
	path := writeConf(t, `
[secrets]
default = "too-short"
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConf(t, `not = [valid toml`)

	_, err := Load(path)
	require.Error(t, err)
}

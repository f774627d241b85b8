package cryptox

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRSAKeyPKCS8(t *testing.T) {
	pemKey, err := GenerateRSAKeyPKCS8(2048)
	require.NoError(t, err)

	block, rest := pem.Decode(pemKey)
	require.NotNil(t, block)
	require.Empty(t, rest)
	require.Equal(t, "PRIVATE KEY", block.Type)

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	require.NoError(t, err)

	key, ok := parsed.(*rsa.PrivateKey)
	require.True(t, ok)
	require.Equal(t, 2048, key.N.BitLen())
}

func TestGenerateRSAKeyPKCS8_RejectsWeakKeys(t *testing.T) {
	_, err := GenerateRSAKeyPKCS8(1024)
	require.Error(t, err)
}

func TestLoadOrGenerateRSAKey_GeneratesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private.pem")

	first, generated, err := LoadOrGenerateRSAKey(path, 2048)
	require.NoError(t, err)
	require.True(t, generated)
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Second call must load the persisted key, not mint a new one.
	second, generated, err := LoadOrGenerateRSAKey(path, 2048)
	require.NoError(t, err)
	require.False(t, generated)
	require.Equal(t, first, second)
}

func TestLoadOrGenerateRSAKey_UnreadableFileIsAnError(t *testing.T) {
	dir := t.TempDir()

	// A directory at the key path is unreadable as a file; it must surface
	// as an error instead of triggering regeneration.
	_, _, err := LoadOrGenerateRSAKey(dir, 2048)
	require.Error(t, err)
}

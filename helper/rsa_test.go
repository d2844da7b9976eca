package helper

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedKeyPairRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rsa")
	require.NoError(t, GenerateKeyPair(dir, 1024))

	cipher, err := LoadRSACipher(dir)
	require.NoError(t, err)

	pub, err := os.ReadFile(filepath.Join(dir, PublicKeyFile))
	require.NoError(t, err)
	assert.Equal(t, string(pub), cipher.PublicKeyPEM())
	assert.True(t, strings.HasPrefix(cipher.PublicKeyPEM(), "-----BEGIN PUBLIC KEY-----"))

	encrypted, err := cipher.Encrypt("s3cret-password")
	require.NoError(t, err)
	plain, err := cipher.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "s3cret-password", plain)
}

func TestLoadPKCS8PrivateKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	dir := t.TempDir()
	block := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	require.NoError(t, os.WriteFile(filepath.Join(dir, PrivateKeyFile), block, 0o600))

	cipher, err := LoadRSACipher(dir)
	require.NoError(t, err)
	encrypted, err := cipher.Encrypt("x")
	require.NoError(t, err)
	plain, err := cipher.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "x", plain)
}

func TestDecryptRejectsGarbage(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	cipher, err := NewRSACipher(key)
	require.NoError(t, err)

	_, err = cipher.Decrypt("not-hex")
	assert.Error(t, err)
	_, err = cipher.Decrypt("abcd")
	assert.Error(t, err)
}

func TestLoadRSACipherMissingFile(t *testing.T) {
	_, err := LoadRSACipher(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

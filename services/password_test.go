package services

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"recipe-share/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD5HasherIsDeterministic(t *testing.T) {
	h := MD5Hasher{Salt: "salt"}

	a, err := h.Hash("secret")
	require.NoError(t, err)
	b, err := h.Hash("secret")
	require.NoError(t, err)

	sum := md5.Sum([]byte("saltsecret"))
	assert.Equal(t, hex.EncodeToString(sum[:]), a)
	assert.Equal(t, a, b)
	assert.True(t, h.Check("secret", a))
	assert.False(t, h.Check("Secret", a))
	assert.False(t, h.Check("secret", ""))
	assert.False(t, h.NeedsRehash(a))
}

func TestMD5HasherSaltMatters(t *testing.T) {
	a, _ := MD5Hasher{Salt: "one"}.Hash("secret")
	b, _ := MD5Hasher{Salt: "two"}.Hash("secret")
	assert.NotEqual(t, a, b)
}

func TestBcryptHasherAcceptsLegacyDigests(t *testing.T) {
	h := NewPasswordHasher(config.PasswordConfig{Salt: "salt", Scheme: "bcrypt", BcryptCost: 4})
	legacy, _ := MD5Hasher{Salt: "salt"}.Hash("secret")

	assert.True(t, h.Check("secret", legacy))
	assert.True(t, h.NeedsRehash(legacy))

	digest, err := h.Hash("secret")
	require.NoError(t, err)
	assert.True(t, h.Check("secret", digest))
	assert.False(t, h.Check("other", digest))
	assert.False(t, h.NeedsRehash(digest))
}

func TestNewPasswordHasherDefaultsToMD5(t *testing.T) {
	h := NewPasswordHasher(config.PasswordConfig{Salt: "salt", Scheme: "md5"})
	_, ok := h.(MD5Hasher)
	assert.True(t, ok)
}

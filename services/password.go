package services

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"recipe-share/config"

	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, digest string) bool
	// NeedsRehash reports whether digest was produced by an older scheme.
	NeedsRehash(digest string) bool
}

func NewPasswordHasher(cfg config.PasswordConfig) PasswordHasher {
	legacy := MD5Hasher{Salt: cfg.Salt}
	if cfg.Scheme == "bcrypt" {
		return BcryptHasher{Cost: cfg.BcryptCost, Legacy: legacy}
	}
	return legacy
}

// MD5Hasher produces hex(md5(salt + password)). One process-wide salt and no
// stretching: kept only so existing digests keep verifying.
type MD5Hasher struct {
	Salt string
}

func (h MD5Hasher) Hash(password string) (string, error) {
	sum := md5.Sum([]byte(h.Salt + password))
	return hex.EncodeToString(sum[:]), nil
}

func (h MD5Hasher) Check(password, digest string) bool {
	if digest == "" {
		return false
	}
	want, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(want), []byte(digest)) == 1
}

func (h MD5Hasher) NeedsRehash(string) bool { return false }

// BcryptHasher writes bcrypt digests and still accepts legacy MD5 ones.
type BcryptHasher struct {
	Cost   int
	Legacy MD5Hasher
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") || strings.HasPrefix(digest, "$2b$") || strings.HasPrefix(digest, "$2y$")
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h BcryptHasher) Check(password, digest string) bool {
	if isBcrypt(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}
	return h.Legacy.Check(password, digest)
}

func (h BcryptHasher) NeedsRehash(digest string) bool {
	return !isBcrypt(digest)
}

package helper

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	PublicKeyFile  = "public.pem"
	PrivateKeyFile = "private.pem"
	RSAKeyBits     = 2048
)

// RSACipher decrypts credentials that clients encrypted with the public key.
// Ciphertext travels hex encoded, padded with OAEP over SHA-1.
type RSACipher struct {
	private   *rsa.PrivateKey
	publicPEM string
}

func NewRSACipher(key *rsa.PrivateKey) (*RSACipher, error) {
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}
	pub := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return &RSACipher{private: key, publicPEM: string(pub)}, nil
}

// LoadRSACipher reads private.pem from dir. PKCS#1 and PKCS#8 keys are accepted.
func LoadRSACipher(dir string) (*RSACipher, error) {
	raw, err := os.ReadFile(filepath.Join(dir, PrivateKeyFile))
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("private key: no PEM block")
	}

	var key *rsa.PrivateKey
	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	default:
		var parsed interface{}
		parsed, err = x509.ParsePKCS8PrivateKey(block.Bytes)
		if err == nil {
			var ok bool
			if key, ok = parsed.(*rsa.PrivateKey); !ok {
				err = errors.New("private key is not RSA")
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return NewRSACipher(key)
}

func (r *RSACipher) PublicKeyPEM() string { return r.publicPEM }

func (r *RSACipher) Encrypt(plain string) (string, error) {
	out, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, &r.private.PublicKey, []byte(plain), nil)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(out), nil
}

func (r *RSACipher) Decrypt(ciphertext string) (string, error) {
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	out, err := rsa.DecryptOAEP(sha1.New(), rand.Reader, r.private, raw, nil)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// GenerateKeyPair writes a fresh private.pem and public.pem into dir.
func GenerateKeyPair(dir string, bits int) error {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	cipher, err := NewRSACipher(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	private := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	if err := os.WriteFile(filepath.Join(dir, PrivateKeyFile), private, 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, PublicKeyFile), []byte(cipher.PublicKeyPEM()), 0o644)
}

package config

import (
	"fmt"
	"os"
	"time"
)

// DefaultTokenTTL applies when a token is issued without an explicit lifetime.
const DefaultTokenTTL = 15 * 24 * time.Hour

type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}

func loadToken() (TokenConfig, error) {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return TokenConfig{}, fmt.Errorf("missing required env var: SECRET_KEY")
	}
	ttl := envDur("TOKEN_TTL", DefaultTokenTTL)
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return TokenConfig{Secret: []byte(secret), TTL: ttl}, nil
}

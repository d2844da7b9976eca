package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config is built once at start-up and passed to every component that needs it.
type Config struct {
	Env           string
	Port          string
	DB            DBConfig
	Token         TokenConfig
	Password      PasswordConfig
	RSADir        string
	Redis         RedisConfig
	RateLimit     RateLimitConfig
	RabbitMQURL   string
	Storage       StorageConfig
	MaxCoverBytes int64

	// DotEnvMissing is set when no .env file could be read.
	DotEnvMissing bool
}

type DBConfig struct {
	Driver string
	URL    string
}

type PasswordConfig struct {
	Salt       string
	Scheme     string
	BcryptCost int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

type StorageConfig struct {
	Type      string
	LocalPath string
	Region    string
	Endpoint  string
	SecretID  string
	SecretKey string
	Bucket    string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	dotenvErr := godotenv.Load()

	cfg := &Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("APP_PORT", "8080"),
		DB: DBConfig{
			Driver: strings.ToLower(envStr("DB_DRIVER", DriverPostgres)),
			URL:    os.Getenv("DATABASE_URL"),
		},
		Password: PasswordConfig{
			Salt:       envStr("PASSWORD_SALT", "0123456789ABCDEF...uygt6987"),
			Scheme:     strings.ToLower(envStr("PASSWORD_SCHEME", "md5")),
			BcryptCost: envInt("BCRYPT_COST", 10),
		},
		RSADir: envStr("RSA_DIR", "static/rsa"),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
		},
		RateLimit:   loadRateLimit(),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		Storage: StorageConfig{
			Type:      strings.ToLower(envStr("STORAGE_TYPE", StorageLocal)),
			LocalPath: envStr("STORAGE_LOCAL_PATH", "./uploads"),
			Region:    os.Getenv("COS_REGION"),
			Endpoint:  os.Getenv("COS_ENDPOINT"),
			SecretID:  os.Getenv("COS_SECRET_ID"),
			SecretKey: os.Getenv("COS_SECRET_KEY"),
			Bucket:    os.Getenv("COS_BUCKET"),
		},
		MaxCoverBytes: int64(envInt("MAX_COVER_BYTES", 5<<20)),
		DotEnvMissing: dotenvErr != nil,
	}

	token, err := loadToken()
	if err != nil {
		return nil, err
	}
	cfg.Token = token

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("missing required env var: DATABASE_URL")
	}
	switch c.DB.Driver {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	switch c.Password.Scheme {
	case "md5", "bcrypt":
	default:
		return fmt.Errorf("unsupported PASSWORD_SCHEME %q", c.Password.Scheme)
	}
	switch c.Storage.Type {
	case StorageLocal:
	case StorageS3:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("missing required env var: COS_BUCKET")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE %q", c.Storage.Type)
	}
	if c.MaxCoverBytes <= 0 {
		return fmt.Errorf("MAX_COVER_BYTES must be positive")
	}
	return nil
}

// IsDev reports whether the process runs in the development environment.
func (c *Config) IsDev() bool { return c.Env == "dev" }

func loadRateLimit() RateLimitConfig {
	rl := RateLimitConfig{
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 10),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", 6*time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if rl.Capacity < 1 {
		rl.Capacity = 1
	}
	if rl.RefillTokens < 1 {
		rl.RefillTokens = 1
	}
	if rl.RefillInterval <= 0 {
		rl.RefillInterval = time.Second
	}
	if minTTL := 5 * rl.RefillInterval; rl.TTL < minTTL {
		rl.TTL = minTTL
	}
	return rl
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}

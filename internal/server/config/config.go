// Package config handles configuration for the server: defaults, an optional
// JSON file, environment variables (optionally from a .env file) and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gatekeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing tokens (HS256). Required.
//   - HashAlgorithm / HashCost: password hash and its work factor. A cost
//     of 0 means the algorithm's own default (auth.DefaultCost).
//   - CookieSecure: set the Secure attribute on the token cookie.
//   - CORSAllowedOrigins: comma separated origins allowed to call the API.
//   - LogLevel: debug, info, warn or error.
//   - GinMode: debug, release or test.
type Config struct {
	EndpointAddrHTTP   string
	DatabaseDSN        string
	SecretKey          string
	HashAlgorithm      string
	HashCost           int
	CookieSecure       bool
	CORSAllowedOrigins string
	LogLevel           string
	GinMode            string
}

// LoadDefaults populates Config with development defaults. There is no
// default secret.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.HashAlgorithm = auth.AlgorithmBcrypt
	c.HashCost = 0
	c.CookieSecure = false
	c.CORSAllowedOrigins = "http://localhost:3000"
	c.LogLevel = "info"
	c.GinMode = "release"
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("JWT secret is required (JWT_SECRET, -s or secret_key)")
	}
	if c.EndpointAddrHTTP == "" {
		return errors.New("HTTP address must not be empty")
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("unsupported gin mode %q", c.GinMode)
	}
	cost := c.HashCost
	if cost == 0 {
		cost = auth.DefaultCost(c.HashAlgorithm)
	}
	switch c.HashAlgorithm {
	case auth.AlgorithmBcrypt:
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return fmt.Errorf("bcrypt cost must be between %d and %d (got %d)", bcrypt.MinCost, bcrypt.MaxCost, cost)
		}
	case auth.AlgorithmArgon2id:
		if cost < 1 {
			return fmt.Errorf("argon2id time cost must be >= 1 (got %d)", cost)
		}
	default:
		return fmt.Errorf("unsupported hash algorithm %q", c.HashAlgorithm)
	}
	return nil
}

// LoadConfig builds a Config from defaults, then overlays the JSON file named
// by -c/-config, then the environment, then command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, dotEnvFile); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is LoadConfig over os.Args that exits on error.
func MustLoad() *Config {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

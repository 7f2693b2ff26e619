package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// parseEnv overlays environment variables onto config. Variables from
// dotEnvPath are loaded first but never override the real environment; a
// missing file is not an error.
func parseEnv(config *Config, dotEnvPath string) error {
	if dotEnvPath != "" {
		if err := godotenv.Load(dotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotEnvPath, err)
		}
	}

	lookupString("HTTP_ADDR", &config.EndpointAddrHTTP)
	lookupString("DATABASE_DSN", &config.DatabaseDSN)
	lookupString("JWT_SECRET", &config.SecretKey)
	lookupString("HASH_ALGORITHM", &config.HashAlgorithm)
	lookupString("CORS_ALLOWED_ORIGINS", &config.CORSAllowedOrigins)
	lookupString("LOG_LEVEL", &config.LogLevel)
	lookupString("GIN_MODE", &config.GinMode)

	if v, ok := os.LookupEnv("HASH_COST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HASH_COST: %w", err)
		}
		config.HashCost = n
	}

	if v, ok := os.LookupEnv("COOKIE_SECURE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		config.CookieSecure = b
	}

	return nil
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gatekeeper/internal/flagx"
)

// JsonConfig mirrors Config for unmarshalling. Pointer fields tell "absent"
// apart from zero values so that a partial file only overrides what it sets.
type JsonConfig struct {
	EndpointAddrHTTP   *string `json:"endpoint_addr_http"`
	DatabaseDSN        *string `json:"database_dsn"`
	SecretKey          *string `json:"secret_key"`
	HashAlgorithm      *string `json:"hash_algorithm"`
	HashCost           *int    `json:"hash_cost"`
	CookieSecure       *bool   `json:"cookie_secure"`
	CORSAllowedOrigins *string `json:"cors_allowed_origins"`
	LogLevel           *string `json:"log_level"`
	GinMode            *string `json:"gin_mode"`
}

// parseJSON loads the file named by -c / -config, if any, into config.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.HashAlgorithm, c.HashAlgorithm)
	setString(&config.CORSAllowedOrigins, c.CORSAllowedOrigins)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.GinMode, c.GinMode)
	if c.HashCost != nil {
		config.HashCost = *c.HashCost
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

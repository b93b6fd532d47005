// Package config assembles runtime settings for the finkeeper CLI from four
// layered sources: built-in defaults, a JSON file, environment variables,
// and command-line flags. Later sources take precedence.
package config

import (
	"path/filepath"
	"time"
)

// Config holds runtime settings.
//
// All storage lives under DataDir: the user-store JSON document, the local
// session database, and the device key that signs session tokens.
type Config struct {
	DataDir               string        `env:"FINKEEPER_DATA_DIR"`
	UserStoreFile         string        `env:"FINKEEPER_USER_STORE_FILE"`
	SessionDBFile         string        `env:"FINKEEPER_SESSION_DB_FILE"`
	DeviceKeyFile         string        `env:"FINKEEPER_DEVICE_KEY_FILE"`
	TokenValidityDuration time.Duration `env:"FINKEEPER_TOKEN_VALIDITY"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.UserStoreFile = "db.json"
	c.SessionDBFile = "session.db"
	c.DeviceKeyFile = "device.key"
	c.TokenValidityDuration = 24 * time.Hour
}

// UserStorePath is the resolved location of the user-store document.
func (c *Config) UserStorePath() string {
	return filepath.Join(c.DataDir, c.UserStoreFile)
}

// SessionDSN is the resolved sqlite DSN of the local session database.
func (c *Config) SessionDSN() string {
	return filepath.Join(c.DataDir, c.SessionDBFile)
}

// DeviceKeyPath is the resolved location of the device key file.
func (c *Config) DeviceKeyPath() string {
	return filepath.Join(c.DataDir, c.DeviceKeyFile)
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

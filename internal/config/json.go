package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/flagx"
	"github.com/dmitrijs2005/finkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can specify the token validity either as a
// string like "24h" or as integer nanoseconds.
type JsonConfig struct {
	DataDir               string         `json:"data_dir"`
	UserStoreFile         string         `json:"user_store_file"`
	SessionDBFile         string         `json:"session_db_file"`
	DeviceKeyFile         string         `json:"device_key_file"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When no file is named the function is a no-op; a file
// that cannot be read or parsed panics, since the caller explicitly asked
// for it.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.UserStoreFile != "" {
		cfg.UserStoreFile = jc.UserStoreFile
	}
	if jc.SessionDBFile != "" {
		cfg.SessionDBFile = jc.SessionDBFile
	}
	if jc.DeviceKeyFile != "" {
		cfg.DeviceKeyFile = jc.DeviceKeyFile
	}
	if jc.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = time.Duration(jc.TokenValidityDuration.Duration)
	}
}

package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/idclxvi/identity-store/internal/flagx"
	"github.com/idclxvi/identity-store/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	DatabaseDSN    string         `json:"database_dsn"`
	ConnectTimeout timex.Duration `json:"connect_timeout"`
	LogLevel       string         `json:"log_level"`
	MigrateOnly    bool           `json:"migrate_only"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config
// command-line flags; if neither is set, no JSON file is loaded. If the
// file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.ConnectTimeout = time.Duration(c.ConnectTimeout.Duration)
	config.LogLevel = c.LogLevel
	config.MigrateOnly = c.MigrateOnly
}

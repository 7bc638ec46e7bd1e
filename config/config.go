// Package config reads mongo-join settings from defaults, an optional YAML
// file, MONGOJOIN_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rediwo/mongo-join/logger"
	"github.com/rediwo/mongo-join/types"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. MONGOJOIN_DB
	EnvPrefix = "MONGOJOIN"

	// ConfigName is the file looked up in the working directory when no
	// file is given explicitly
	ConfigName = "mongo-join"
)

// Config holds the settings shared by all commands
type Config struct {
	// DB is the MongoDB connection string, including the database name
	DB string `mapstructure:"db"`

	// Schema is the path of the YAML model file
	Schema string `mapstructure:"schema"`

	// Model is the model queried when none is given on the command line
	Model string `mapstructure:"model"`

	LogLevel string `mapstructure:"log_level"`

	// Limit is the default page size
	Limit int64 `mapstructure:"limit"`

	// Debug logs every compiled pipeline
	Debug bool `mapstructure:"debug"`
}

// flagKeys maps flag names to config keys
var flagKeys = map[string]string{
	"db":        "db",
	"schema":    "schema",
	"model":     "model",
	"log-level": "log_level",
	"limit":     "limit",
	"debug":     "debug",
}

func newViperWithDefaults() *viper.Viper {
	vi := viper.New()

	vi.SetDefault("db", "mongodb://localhost:27017/test")
	vi.SetDefault("schema", "schema.yaml")
	vi.SetDefault("model", "")
	vi.SetDefault("log_level", "info")
	vi.SetDefault("limit", types.DefaultLimit)
	vi.SetDefault("debug", false)

	vi.SetEnvPrefix(EnvPrefix)
	vi.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	vi.AutomaticEnv()

	return vi
}

// Load builds the configuration. configFile may be empty, in which case
// mongo-join.yaml is read from the working directory if it exists. Only
// flags that were set on the command line override other sources.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	vi := newViperWithDefaults()

	if configFile != "" {
		vi.SetConfigFile(configFile)
		if err := vi.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	} else {
		vi.SetConfigName(ConfigName)
		vi.SetConfigType("yaml")
		vi.AddConfigPath(".")
		if err := vi.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := vi.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	c := &Config{}
	if err := vi.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to decode config, %v", err)
	}
	return c, nil
}

// Level returns the parsed log level
func (c *Config) Level() logger.LogLevel {
	return logger.ParseLogLevel(c.LogLevel)
}

// QueryOptions returns query options carrying the configured limit and
// debug setting
func (c *Config) QueryOptions() types.QueryOptions {
	return types.QueryOptions{Limit: c.Limit, Debug: c.Debug}
}

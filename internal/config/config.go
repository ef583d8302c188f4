package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "SHARDMERGE_"

// Config is the process configuration
type Config struct {
	Schema      string            `mapstructure:"schema"`
	RuleFile    string            `mapstructure:"rule_file"`
	CatalogDir  string            `mapstructure:"catalog_dir"`
	DataSources map[string]string `mapstructure:"data_sources"` // data source name -> sqlite DSN
	Workers     int               `mapstructure:"workers"`
	Port        int               `mapstructure:"port"`
	MetricsAddr string            `mapstructure:"metrics_addr"`
	Log         LogConfig         `mapstructure:"log"`
}

// LogConfig configures the console and Seq log sinks
type LogConfig struct {
	Level  string `mapstructure:"level"`
	SeqURL string `mapstructure:"seq_url"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("schema", "sharding_db")
	v.SetDefault("workers", 8)
	v.SetDefault("port", 4444)
	v.SetDefault("metrics_addr", ":9104")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.seq_url", "")
}

// Load reads the optional config file at path and then applies
// SHARDMERGE_* environment variables. A double underscore separates nested
// keys: SHARDMERGE_LOG__SEQ_URL sets log.seq_url.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// 1. Config file (optional)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	// 2. Environment variables
	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		key, value := pair[0], pair[1]
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		propKey := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		propKey = strings.ReplaceAll(propKey, "__", ".")
		v.Set(propKey, value)
	}

	// 3. Unmarshal into struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have no usable default
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

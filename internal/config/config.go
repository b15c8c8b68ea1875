package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds tool-wide settings for the fang CLI
type Config struct {
	Digest        string        `mapstructure:"digest" yaml:"digest"`
	Parallelism   int           `mapstructure:"parallelism" yaml:"parallelism"`
	OutputFormat  string        `mapstructure:"output_format" yaml:"output_format"`
	DecryptSuffix string        `mapstructure:"decrypt_suffix" yaml:"decrypt_suffix"`
	EncryptSuffix string        `mapstructure:"encrypt_suffix" yaml:"encrypt_suffix"`
	LogFormat     string        `mapstructure:"log_format" yaml:"log_format"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("digest", "md5")
	v.SetDefault("parallelism", runtime.NumCPU())
	v.SetDefault("output_format", "table")
	v.SetDefault("decrypt_suffix", ".dec")
	v.SetDefault("encrypt_suffix", ".enc")
	v.SetDefault("log_format", "text")
	v.SetDefault("timeout", 5*time.Minute)
}

// Load loads configuration using Viper. An explicit path must exist; without
// one the standard locations are searched and a missing file is not an error.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith loads configuration into an existing Viper instance
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fang-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.fang")
		v.AddConfigPath("/etc/fang")
	}

	// Allow environment variables
	v.SetEnvPrefix("FANG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	switch c.OutputFormat {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format: %s", c.OutputFormat)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.LogFormat)
	}
	if c.DecryptSuffix == "" || c.EncryptSuffix == "" {
		return fmt.Errorf("output suffixes must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

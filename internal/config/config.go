package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config describes the top-level application configuration loaded from YAML and ENV.
type Config struct {
	Version  string         `mapstructure:"version"`
	Scan     ScanConfig     `mapstructure:"scan"`
	Activity ActivityConfig `mapstructure:"activity"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
}

// ScanConfig tunes the repository walk.
type ScanConfig struct {
	// Ignore holds extra path substrings excluded on top of the built-in list
	// (.git, node_modules, build output, virtualenvs, ...).
	Ignore []string `mapstructure:"ignore"`
}

// ActivityConfig controls the version-control history query.
type ActivityConfig struct {
	GitTimeoutSeconds int `mapstructure:"git_timeout_seconds"`
}

// RulesConfig points at an optional user rule file appended to the built-in table.
type RulesConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig controls logger behaviour.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// ServerConfig describes daemon settings.
type ServerConfig struct {
	Addr           string `mapstructure:"addr"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	CacheSize      int    `mapstructure:"cache_size"`
}

// Load reads configuration from the provided path or defaults to config.yaml.
// Environment variables override file values (prefix: AGENTSCOPE_, dots replaced
// with underscores). A missing config file is not an error: the tool must work
// on defaults when pointed at an arbitrary repository.
func Load(path string) (*Config, error) {
	// best-effort: a local .env feeds the env overrides below
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("AGENTSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults populates sensible defaults for optional fields.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("scan.ignore", []string{})

	v.SetDefault("activity.git_timeout_seconds", 5)

	v.SetDefault("rules.path", "")

	v.SetDefault("server.addr", ":8090")
	v.SetDefault("server.metrics_enabled", true)
	v.SetDefault("server.cache_size", 16)
}

// Validate performs basic sanity checks on configuration values.
func (c *Config) Validate() error {
	if c.Activity.GitTimeoutSeconds <= 0 {
		return errors.New("activity.git_timeout_seconds must be > 0")
	}

	if c.Server.CacheSize < 0 {
		return errors.New("server.cache_size must be >= 0")
	}

	for _, s := range c.Scan.Ignore {
		if strings.TrimSpace(s) == "" {
			return errors.New("scan.ignore entries cannot be blank")
		}
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}

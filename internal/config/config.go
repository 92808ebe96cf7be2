// Package config loads application configuration from file and
// environment and owns global logger setup.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Serper    SerperConfig    `yaml:"serper" mapstructure:"serper"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SerperConfig holds Serper search API settings.
type SerperConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Retries int    `yaml:"retries" mapstructure:"retries"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// FetchConfig configures outbound page fetching.
type FetchConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Retries     int     `yaml:"retries" mapstructure:"retries"`
	PerHostRPS  float64 `yaml:"per_host_rps" mapstructure:"per_host_rps"`
	MaxBodyKB   int     `yaml:"max_body_kb" mapstructure:"max_body_kb"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// CacheConfig configures the advisory HTTP response cache.
type CacheConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// BatchConfig configures bulk profile building.
type BatchConfig struct {
	MaxRows     int `yaml:"max_rows" mapstructure:"max_rows"`
	Parallelism int `yaml:"parallelism" mapstructure:"parallelism"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROFILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("serper.base_url", "https://google.serper.dev")
	v.SetDefault("serper.retries", 2)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("fetch.retries", 1)
	v.SetDefault("fetch.per_host_rps", 2.0)
	v.SetDefault("fetch.max_body_kb", 512)
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("batch.max_rows", 100)
	v.SetDefault("batch.parallelism", 4)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks mode-specific required settings and shared bounds.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Batch.MaxRows < 1 || c.Batch.MaxRows > 1000 {
		problems = append(problems, "batch.max_rows must be between 1 and 1000")
	}
	if c.Batch.Parallelism < 1 || c.Batch.Parallelism > 50 {
		problems = append(problems, "batch.parallelism must be between 1 and 50")
	}

	switch mode {
	case "lookup", "bulk", "export":
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		problems = append(problems, "unknown mode: "+mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

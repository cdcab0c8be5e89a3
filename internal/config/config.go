// Package config loads orgtree server configuration.
//
// Values are resolved in order: built-in defaults, an optional YAML file,
// then ORGTREE_* environment variables. The result is checked with struct
// validation before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/orgerrors"
)

// EnvConfigFile names the environment variable holding the config file path.
const EnvConfigFile = "ORGTREE_CONFIG"

// Config is the complete server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Registry  RegistryConfig  `yaml:"registry"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Log       LogConfig       `yaml:"log"`
	Report    ReportConfig    `yaml:"report"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Listen          string        `yaml:"listen" validate:"required,hostname_port"`
	ReadTimeout     time.Duration `yaml:"readTimeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" validate:"gt=0"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes" validate:"gt=0"`
}

// StorageConfig selects and tunes the tree store.
type StorageConfig struct {
	// InMemory keeps trees only in process memory.
	InMemory       bool          `yaml:"inMemory"`
	DataDir        string        `yaml:"dataDir" validate:"required_if=InMemory false"`
	SyncWrites     bool          `yaml:"syncWrites"`
	GCInterval     time.Duration `yaml:"gcInterval" validate:"gte=0"`
	GCDiscardRatio float64       `yaml:"gcDiscardRatio" validate:"gt=0,lte=1"`
}

// RegistryConfig tunes tree editing.
type RegistryConfig struct {
	StrictMerge bool `yaml:"strictMerge"`
}

// RateLimitConfig configures the request token bucket. A zero rate
// disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// ReportConfig sets report defaults.
type ReportConfig struct {
	DefaultFormat string `yaml:"defaultFormat" validate:"oneof=xml json yaml text"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:          "127.0.0.1:8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    document.MaxDocumentSize,
		},
		Storage: StorageConfig{
			InMemory:       true,
			DataDir:        "",
			SyncWrites:     true,
			GCInterval:     5 * time.Minute,
			GCDiscardRatio: 0.5,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Report: ReportConfig{
			DefaultFormat: "xml",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: operator-supplied config path
	if err != nil {
		return &orgerrors.ConfigError{Option: "config file", Value: path, Cause: err}
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &orgerrors.ConfigError{Option: "config file", Value: path, Message: "invalid YAML", Cause: err}
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Listen = envString("ORGTREE_LISTEN", c.Server.Listen)
	c.Server.ReadTimeout = envDuration("ORGTREE_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = envDuration("ORGTREE_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = envDuration("ORGTREE_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Storage.DataDir = envString("ORGTREE_DATA_DIR", c.Storage.DataDir)
	if os.Getenv("ORGTREE_DATA_DIR") != "" && os.Getenv("ORGTREE_IN_MEMORY") == "" {
		c.Storage.InMemory = false
	}
	c.Storage.InMemory = envBool("ORGTREE_IN_MEMORY", c.Storage.InMemory)
	c.Storage.GCInterval = envDuration("ORGTREE_GC_INTERVAL", c.Storage.GCInterval)

	c.Registry.StrictMerge = envBool("ORGTREE_STRICT_MERGE", c.Registry.StrictMerge)

	c.RateLimit.RequestsPerSecond = envFloat("ORGTREE_RATE_LIMIT_RPS", c.RateLimit.RequestsPerSecond)
	c.RateLimit.Burst = envInt("ORGTREE_RATE_LIMIT_BURST", c.RateLimit.Burst)

	c.Log.Level = strings.ToLower(envString("ORGTREE_LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(envString("ORGTREE_LOG_FORMAT", c.Log.Format))
	c.Report.DefaultFormat = strings.ToLower(envString("ORGTREE_REPORT_FORMAT", c.Report.DefaultFormat))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field constraint. The first violation is returned
// as a *orgerrors.ConfigError naming the field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst < 1 {
			return &orgerrors.ConfigError{
				Option:  "rateLimit.burst",
				Value:   c.RateLimit.Burst,
				Message: "must be at least 1 when rate limiting is enabled",
			}
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &orgerrors.ConfigError{
			Option:  strings.TrimPrefix(fe.Namespace(), "Config."),
			Value:   fe.Value(),
			Message: fmt.Sprintf("failed %q constraint", fe.Tag()),
		}
	}
	return &orgerrors.ConfigError{Message: "invalid configuration", Cause: err}
}

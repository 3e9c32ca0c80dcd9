// Package config loads the storefront configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"cadoz/internal/kv"
	"cadoz/internal/order"
)

// Config is the full service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Health  HealthConfig  `yaml:"health"`
	Storage StorageConfig `yaml:"storage"`
	Catalog CatalogConfig `yaml:"catalog"`
	Order   order.Config  `yaml:"order"`
	Assist  AssistConfig  `yaml:"assist"`
	Search  SearchConfig  `yaml:"search"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Port string `yaml:"port"`
}

type HealthConfig struct {
	Port string `yaml:"port"`
}

// StorageConfig selects the session store backend.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// CatalogConfig locates the catalogue. An empty path uses the embedded one.
type CatalogConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// AssistConfig configures the assistant endpoint and client.
type AssistConfig struct {
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
	Endpoint string        `yaml:"endpoint"`
}

type SearchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

type LogConfig struct {
	Development bool `yaml:"development"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP:    HTTPConfig{Port: "8080"},
		Health:  HealthConfig{Port: "50202"},
		Storage: StorageConfig{Driver: kv.DriverMemory, Path: "cadoz.db"},
		Order:   order.DefaultConfig(),
		Assist: AssistConfig{
			Model:    "gemini-2.0-flash",
			Timeout:  10 * time.Second,
			Endpoint: "http://localhost:8080/api/assist",
		},
		Search: SearchConfig{Debounce: 300 * time.Millisecond},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty or missing path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.HTTP.Port = port
	}
	if port := os.Getenv("HEALTH_PORT"); port != "" {
		c.Health.Port = port
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Assist.APIKey = key
	}
	if driver := os.Getenv("CADOZ_STORAGE_DRIVER"); driver != "" {
		c.Storage.Driver = driver
	}
	if path := os.Getenv("CADOZ_STORAGE_PATH"); path != "" {
		c.Storage.Path = path
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case kv.DriverMemory, kv.DriverSQLite:
	default:
		return fmt.Errorf("invalid storage driver: %s (valid: %s, %s)", c.Storage.Driver, kv.DriverMemory, kv.DriverSQLite)
	}
	if c.HTTP.Port == "" {
		return fmt.Errorf("http port is required")
	}
	if c.Assist.Timeout <= 0 {
		return fmt.Errorf("assist timeout must be positive")
	}
	if c.Search.Debounce <= 0 {
		return fmt.Errorf("search debounce must be positive")
	}
	if c.Catalog.Watch && c.Catalog.Path == "" {
		return fmt.Errorf("catalog watch requires a catalog path")
	}
	return nil
}

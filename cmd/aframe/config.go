package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-aframe/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// Config holds CLI defaults. Explicit flags take precedence over
// config file values.
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Template string       `yaml:"template"` // default template for scene files that omit one
	Workers  int          `yaml:"workers"`  // snapshot pool size (0 = auto)
}

// ServerConfig defines serve defaults.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: defaultHost, Port: defaultPort},
	}
}

// LoadConfig reads a YAML config file. An empty path returns the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// merge applies config file defaults beneath explicit flags. A flag
// still at its default yields to the config value.
func (c *Config) merge(flags *cliFlags) {
	if flags.host == defaultHost && c.Server.Host != "" {
		flags.host = c.Server.Host
	}
	if flags.port == defaultPort && c.Server.Port != 0 {
		flags.port = c.Server.Port
	}
	if flags.workers == 0 && c.Workers != 0 {
		flags.workers = c.Workers
	}
}

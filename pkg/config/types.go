package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/logging"
)

// Environment variables consulted by Resolve.
const (
	EnvConfig   = "PACTCORE_CONFIG"
	EnvLogLevel = "PACTCORE_LOG_LEVEL"
)

// DefaultFileNames are tried in order when no configuration path is given.
var DefaultFileNames = []string{"pactcore.yaml", "pactcore.yml", "pactcore.json"}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is debug, info, warn or error. Empty means info.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json. Empty means text.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// File, when set, receives a JSON copy of every record at debug level.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// AddSource adds source file and line to log entries.
	AddSource bool `json:"addSource,omitempty" yaml:"addSource,omitempty"`
}

// Logging returns the logging.Config for the terminal handler.
func (l LoggingConfig) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(l.Level)
	cfg.Format = logging.ParseFormat(l.Format)
	cfg.AddSource = l.AddSource
	return cfg
}

// Config is a pactcore project configuration.
type Config struct {
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`

	// Mode selects which generators run: consumer (default) or provider.
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Context is the generator context (provider state values, mockServer).
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty"`

	// Rules lists globs of bare matchingRules documents.
	Rules []string `json:"rules,omitempty" yaml:"rules,omitempty"`

	// Generators lists globs of bare generators documents.
	Generators []string `json:"generators,omitempty" yaml:"generators,omitempty"`

	// Documents lists globs of documents holding matchingRules and generators.
	Documents []string `json:"documents,omitempty" yaml:"documents,omitempty"`

	// path is the file the configuration was read from, empty for defaults.
	path string
}

// Default returns an empty consumer-mode configuration.
func Default() *Config {
	return &Config{
		Mode:    "consumer",
		Context: map[string]any{},
	}
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// BaseDir is the directory globs are resolved against: the directory of the
// configuration file, or "." for defaults.
func (c *Config) BaseDir() string {
	if c.path == "" {
		return "."
	}
	return filepath.Dir(c.path)
}

// TestMode parses Mode.
func (c *Config) TestMode() (contract.TestMode, error) {
	if c.Mode == "" {
		return contract.ModeConsumer, nil
	}
	return contract.ParseTestMode(c.Mode)
}

// Validate checks the fields that have a fixed set of values.
func (c *Config) Validate() error {
	if _, err := c.TestMode(); err != nil {
		return fmt.Errorf("%w: mode: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: logging.format must be text or json, got %q", ErrInvalidConfig, c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn or error, got %q", ErrInvalidConfig, c.Logging.Level)
	}
	for _, group := range [][]string{c.Rules, c.Generators, c.Documents} {
		for _, pattern := range group {
			if strings.TrimSpace(pattern) == "" {
				return fmt.Errorf("%w: empty glob pattern", ErrInvalidConfig)
			}
		}
	}
	return nil
}

package config

import (
	"os"
	"time"

	dserrors "github.com/systmms/dataseeder/internal/errors"
	"github.com/systmms/dataseeder/internal/logging"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the preferences file looked up when --config is not given
	DefaultPath = "dataseeder.yaml"

	// DefaultTimeout bounds every document store call made by the CLI
	DefaultTimeout = 10 * time.Second
)

// Config holds the runtime configuration of the CLI
type Config struct {
	Path string
	// PathExplicit is set when the user named the preferences file; a missing
	// file is only an error in that case.
	PathExplicit bool
	Logger       *logging.Logger
	Timeout      time.Duration
	Preferences  Preferences
}

// Preferences is the optional dataseeder.yaml structure
type Preferences struct {
	TimeoutMs int               `yaml:"timeout_ms,omitempty"`
	Import    ImportPreferences `yaml:"import,omitempty"`
}

// ImportPreferences controls how import files are read
type ImportPreferences struct {
	// WrapperKey names the member holding the item array when import files
	// are objects such as {"auction_items": [...]}. Empty means the file is
	// the array itself.
	WrapperKey string `yaml:"wrapper_key,omitempty"`
}

// Load reads and parses the preferences file
func (c *Config) Load() error {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Path == "" {
		return nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			if !c.PathExplicit {
				return nil
			}
			return dserrors.ConfigError{
				Field:      "path",
				Value:      c.Path,
				Message:    "configuration file not found",
				Suggestion: "Drop --config to run with defaults",
			}
		}
		return dserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var prefs Preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return dserrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
		}
	}

	if prefs.TimeoutMs < 0 {
		return dserrors.ConfigError{
			Field:      "timeout_ms",
			Value:      prefs.TimeoutMs,
			Message:    "timeout must not be negative",
			Suggestion: "Remove timeout_ms to use the default of 10000",
		}
	}
	if prefs.TimeoutMs > 0 {
		c.Timeout = time.Duration(prefs.TimeoutMs) * time.Millisecond
	}

	c.Preferences = prefs
	if c.Logger != nil {
		c.Logger.Debug("Loaded preferences from %s", c.Path)
	}
	return nil
}

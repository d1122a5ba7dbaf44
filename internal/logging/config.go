package logging

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Supported log formats
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `yaml:"level" toml:"level" json:"level"`
	Format    string `yaml:"format" toml:"format" json:"format"`          // text, json or logfmt
	Timestamp bool   `yaml:"timestamp" toml:"timestamp" json:"timestamp"` // whether to include timestamps
	Caller    bool   `yaml:"caller" toml:"caller" json:"caller"`          // whether to report the calling file
	File      string `yaml:"file,omitempty" toml:"file,omitempty" json:"file,omitempty"`
}

// DefaultConfig returns a default logging configuration.
// Reports go to stdout, so logs stay quiet unless something degrades.
func DefaultConfig() LoggingConfig {
	return LoggingConfig{
		Level:  "warn",
		Format: FormatText,
	}
}

// DevelopmentConfig returns a configuration suitable for debugging
func DevelopmentConfig() LoggingConfig {
	config := DefaultConfig()
	config.Level = "debug"
	config.Timestamp = true
	config.Caller = true
	return config
}

// Validate checks the level and format names
func (c LoggingConfig) Validate() error {
	if _, err := parseLevel(c.Level); err != nil {
		return err
	}
	if _, err := parseFormatter(c.Format); err != nil {
		return err
	}
	return nil
}

func parseLevel(level string) (log.Level, error) {
	if level == "" {
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

func parseFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return log.TextFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	default:
		return 0, fmt.Errorf("unknown log format: %s", format)
	}
}

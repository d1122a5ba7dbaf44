package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/common-creation/tokenscope/internal/ai"
	"github.com/common-creation/tokenscope/internal/logging"
	"github.com/common-creation/tokenscope/internal/styles"
	"github.com/common-creation/tokenscope/internal/tokens"
)

// MaxBarWidth bounds ui.bar_width
const MaxBarWidth = 200

// Config represents the complete configuration for tokenscope
type Config struct {
	// Model used for encoder selection and context windows
	Model string `yaml:"model" toml:"model" json:"model"`

	// Encoder back-end: embedded, download or heuristic
	Encoder string `yaml:"encoder" toml:"encoder" json:"encoder"`

	// UI configuration
	UI UIConfig `yaml:"ui" toml:"ui" json:"ui"`

	// Logging configuration
	Logging logging.LoggingConfig `yaml:"logging" toml:"logging" json:"logging"`

	// Context window overrides keyed by model name
	ContextWindows map[string]int `yaml:"context_windows,omitempty" toml:"context_windows,omitempty" json:"context_windows,omitempty"`
}

// UIConfig contains UI related configuration
type UIConfig struct {
	// Theme name
	Theme string `yaml:"theme" toml:"theme" json:"theme"`

	// Disable ANSI styling
	NoColor bool `yaml:"no_color" toml:"no_color" json:"no_color"`

	// Usage bar width in cells (0 for the default)
	BarWidth int `yaml:"bar_width" toml:"bar_width" json:"bar_width"`
}

// NewDefaultConfig creates a new configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Model:   getEnvOrDefault("TOKENSCOPE_MODEL", ai.DefaultModel),
		Encoder: getEnvOrDefault("TOKENSCOPE_ENCODER", tokens.BackendEmbedded),
		UI: UIConfig{
			Theme:    getEnvOrDefault("TOKENSCOPE_THEME", "default"),
			NoColor:  os.Getenv("NO_COLOR") != "",
			BarWidth: 50,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Model == "" {
		return errors.New("model is required")
	}

	if c.Encoder != "" && !slices.Contains(tokens.Backends(), c.Encoder) {
		return fmt.Errorf("invalid encoder: %s (must be one of %v)", c.Encoder, tokens.Backends())
	}

	if err := c.UI.Validate(); err != nil {
		return fmt.Errorf("UI configuration error: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging configuration error: %w", err)
	}

	for model, size := range c.ContextWindows {
		if size <= 0 {
			return fmt.Errorf("context window for %s must be positive, got %d", model, size)
		}
	}

	return nil
}

// Validate validates the UI configuration
func (u *UIConfig) Validate() error {
	if u.Theme != "" && !slices.Contains(styles.GetAvailableThemes(), u.Theme) {
		return fmt.Errorf("unknown theme: %s", u.Theme)
	}

	if u.BarWidth < 0 || u.BarWidth > MaxBarWidth {
		return fmt.Errorf("bar_width must be between 0 and %d, got %d", MaxBarWidth, u.BarWidth)
	}

	return nil
}

// Windows returns the context window table with this config's overrides
func (c *Config) Windows() *tokens.WindowTable {
	return tokens.NewWindowTable(c.ContextWindows)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

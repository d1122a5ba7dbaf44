package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed config.example.yaml
var embeddedConfigSample string

// EnvConfigPath names an explicit config file
const EnvConfigPath = "TOKENSCOPE_CONFIG_PATH"

// Loader handles configuration loading and saving
type Loader struct {
	// Config file paths in priority order
	searchPaths []string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		searchPaths: getDefaultSearchPaths(),
	}
}

// NewLoaderWithPaths creates a loader that searches only paths
func NewLoaderWithPaths(paths ...string) *Loader {
	return &Loader{searchPaths: paths}
}

// Load loads configuration from file and environment variables.
// A missing config file is not an error; defaults apply.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	// Start with default configuration
	cfg := NewDefaultConfig()

	configPath := explicitPath
	if configPath == "" {
		configPath = l.findConfig()
	}

	if configPath != "" {
		fileCfg, err := l.loadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		mergeConfig(cfg, fileCfg)
	}

	// Environment wins over the file
	applyEnvironmentOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to file, as TOML for .toml paths and YAML otherwise
func (l *Loader) Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(cfg)
		data = buf.Bytes()
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path where config would be loaded from
func (l *Loader) GetConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if path := l.findConfig(); path != "" {
		return path
	}

	return DefaultConfigPath()
}

// DefaultConfigPath returns the per-user config file location
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "tokenscope", "config.yaml")
	}
	return "tokenscope.yaml"
}

func (l *Loader) findConfig() string {
	for _, path := range l.searchPaths {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// loadFromFile decodes a YAML or TOML file depending on its extension
func (l *Loader) loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// getDefaultSearchPaths returns the default configuration search paths
func getDefaultSearchPaths() []string {
	paths := []string{}

	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		paths = append(paths, envPath)
	}

	// Current directory - prioritized first
	paths = append(paths,
		"tokenscope.yaml",
		"tokenscope.toml",
		".tokenscope.yaml",
	)

	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "tokenscope", "config.yaml"),
			filepath.Join(dir, "tokenscope", "config.toml"),
		)
	}

	return paths
}

// mergeConfig merges source config into destination config
func mergeConfig(dst, src *Config) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Encoder != "" {
		dst.Encoder = src.Encoder
	}

	// Merge UI config
	if src.UI.Theme != "" {
		dst.UI.Theme = src.UI.Theme
	}
	if src.UI.NoColor {
		dst.UI.NoColor = true
	}
	if src.UI.BarWidth != 0 {
		dst.UI.BarWidth = src.UI.BarWidth
	}

	// Merge Logging config
	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Format != "" {
		dst.Logging.Format = src.Logging.Format
	}
	if src.Logging.File != "" {
		dst.Logging.File = src.Logging.File
	}
	dst.Logging.Timestamp = dst.Logging.Timestamp || src.Logging.Timestamp
	dst.Logging.Caller = dst.Logging.Caller || src.Logging.Caller

	// Merge context windows
	if len(src.ContextWindows) > 0 {
		if dst.ContextWindows == nil {
			dst.ContextWindows = make(map[string]int, len(src.ContextWindows))
		}
		for model, size := range src.ContextWindows {
			dst.ContextWindows[model] = size
		}
	}
}

// applyEnvironmentOverrides applies environment variable overrides to config
func applyEnvironmentOverrides(cfg *Config) {
	if model := os.Getenv("TOKENSCOPE_MODEL"); model != "" {
		cfg.Model = model
	}
	if encoder := os.Getenv("TOKENSCOPE_ENCODER"); encoder != "" {
		cfg.Encoder = encoder
	}

	// Logging overrides
	if logLevel := os.Getenv("TOKENSCOPE_LOG_LEVEL"); logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFile := os.Getenv("TOKENSCOPE_LOG_FILE"); logFile != "" {
		cfg.Logging.File = logFile
	}

	// UI overrides
	if theme := os.Getenv("TOKENSCOPE_THEME"); theme != "" {
		cfg.UI.Theme = theme
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.UI.NoColor = true
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// SampleConfig returns the commented sample configuration
func SampleConfig() string {
	return embeddedConfigSample
}

// CreateSampleConfig writes the sample configuration to path.
// An existing file is left untouched unless force is set.
func CreateSampleConfig(path string, force bool) error {
	if fileExists(path) && !force {
		return fmt.Errorf("config file already exists: %s", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(embeddedConfigSample), 0644); err != nil {
		return fmt.Errorf("failed to write sample config: %w", err)
	}

	return nil
}

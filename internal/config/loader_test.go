package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestGetDefaultSearchPaths(t *testing.T) {
	t.Run("without env var", func(t *testing.T) {
		clearEnv(t)
		paths := getDefaultSearchPaths()

		assert.Contains(t, paths, "tokenscope.yaml")
		assert.Contains(t, paths, "tokenscope.toml")
		assert.Contains(t, paths, ".tokenscope.yaml")
	})

	t.Run("with env var", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvConfigPath, "/custom/config.yaml")

		paths := getDefaultSearchPaths()

		require.NotEmpty(t, paths)
		assert.Equal(t, "/custom/config.yaml", paths[0])
	})
}

func TestLoaderLoad(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("yaml from explicit path", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(tempDir, "explicit.yaml")
		writeFile(t, path, `
model: gpt-4
encoder: heuristic
ui:
  theme: light
  bar_width: 30
logging:
  level: debug
  format: json
context_windows:
  my-finetune: 16385
`)

		cfg, err := NewLoaderWithPaths().Load(path)
		require.NoError(t, err)

		assert.Equal(t, "gpt-4", cfg.Model)
		assert.Equal(t, "heuristic", cfg.Encoder)
		assert.Equal(t, "light", cfg.UI.Theme)
		assert.Equal(t, 30, cfg.UI.BarWidth)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, 16385, cfg.ContextWindows["my-finetune"])
	})

	t.Run("toml by extension", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(tempDir, "config.toml")
		writeFile(t, path, `
model = "gpt-4-turbo"
encoder = "heuristic"

[ui]
theme = "dark"
no_color = true

[logging]
format = "logfmt"

[context_windows]
"gpt-4" = 32768
`)

		cfg, err := NewLoaderWithPaths().Load(path)
		require.NoError(t, err)

		assert.Equal(t, "gpt-4-turbo", cfg.Model)
		assert.Equal(t, "dark", cfg.UI.Theme)
		assert.True(t, cfg.UI.NoColor)
		assert.Equal(t, 50, cfg.UI.BarWidth)
		assert.Equal(t, "logfmt", cfg.Logging.Format)
		assert.Equal(t, 32768, cfg.ContextWindows["gpt-4"])
	})

	t.Run("environment wins over file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(tempDir, "env.yaml")
		writeFile(t, path, "model: gpt-4\nui:\n  theme: light\n")
		t.Setenv("TOKENSCOPE_MODEL", "gpt-4o")
		t.Setenv("TOKENSCOPE_LOG_LEVEL", "error")

		cfg, err := NewLoaderWithPaths().Load(path)
		require.NoError(t, err)

		assert.Equal(t, "gpt-4o", cfg.Model)
		assert.Equal(t, "light", cfg.UI.Theme)
		assert.Equal(t, "error", cfg.Logging.Level)
	})

	t.Run("search paths", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(tempDir, "found.yaml")
		writeFile(t, path, "model: gpt-4-32k\n")

		loader := NewLoaderWithPaths(filepath.Join(tempDir, "missing.yaml"), path)
		cfg, err := loader.Load("")
		require.NoError(t, err)

		assert.Equal(t, "gpt-4-32k", cfg.Model)
		assert.Equal(t, path, loader.GetConfigPath(""))
	})

	t.Run("no config file uses defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := NewLoaderWithPaths(filepath.Join(tempDir, "nope.yaml")).Load("")
		require.NoError(t, err)

		assert.Equal(t, NewDefaultConfig(), cfg)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(tempDir, "invalid.yaml")
		writeFile(t, path, "invalid: yaml: content:")

		_, err := NewLoaderWithPaths().Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(tempDir, "bad-encoder.yaml")
		writeFile(t, path, "encoder: sentencepiece\n")

		_, err := NewLoaderWithPaths().Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration validation failed")
	})

	t.Run("missing explicit path", func(t *testing.T) {
		clearEnv(t)

		_, err := NewLoaderWithPaths().Load(filepath.Join(tempDir, "absent.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoaderSave(t *testing.T) {
	tempDir := t.TempDir()

	for _, name := range []string{"saved.yaml", "saved.toml"} {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			loader := NewLoaderWithPaths()
			cfg := NewDefaultConfig()
			cfg.Model = "gpt-4-turbo"
			cfg.UI.Theme = "dark"
			cfg.ContextWindows = map[string]int{"my-finetune": 2048}

			path := filepath.Join(tempDir, "nested", name)
			require.NoError(t, loader.Save(path, cfg))

			loaded, err := loader.Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	clearEnv(t)
	loader := NewLoaderWithPaths(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "/custom/path.yaml", loader.GetConfigPath("/custom/path.yaml"))
	assert.Equal(t, DefaultConfigPath(), loader.GetConfigPath(""))
}

func TestCreateSampleConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sample", "config.yaml")

	require.NoError(t, CreateSampleConfig(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, SampleConfig(), string(data))

	// The sample must load cleanly
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	_, err = NewLoaderWithPaths().Load(path)
	require.NoError(t, err)

	err = CreateSampleConfig(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.NoError(t, CreateSampleConfig(path, true))
}

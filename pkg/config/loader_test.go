package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pactcore.yaml", `
logging:
  level: DEBUG
  format: json
mode: provider
context:
  id: 42
  mockServer:
    url: http://localhost:9000
rules:
  - contracts/*.rules.yaml
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, dir, cfg.BaseDir())
	assert.Equal(t, 42, cfg.Context["id"])
	assert.Equal(t, map[string]any{"url": "http://localhost:9000"}, cfg.Context["mockServer"])
	assert.Equal(t, []string{"contracts/*.rules.yaml"}, cfg.Rules)

	mode, err := cfg.TestMode()
	require.NoError(t, err)
	assert.Equal(t, contract.ModeProvider, mode)

	lc := cfg.Logging.Logging()
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.Equal(t, logging.FormatJSON, lc.Format)
}

func TestLoadFromFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pactcore.json", `{"mode": "consumer", "documents": ["**/*.pact.json"]}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"**/*.pact.json"}, cfg.Documents)
	assert.Equal(t, "consumer", cfg.Mode)
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), ErrFileNotFound},
		{"empty", writeFile(t, dir, "empty.yaml", "  \n"), ErrEmptyFile},
		{"bad yaml", writeFile(t, dir, "bad.yaml", "mode: [provider"), ErrInvalidYAML},
		{"unknown yaml key", writeFile(t, dir, "extra.yaml", "port: 8080\n"), ErrInvalidYAML},
		{"bad json", writeFile(t, dir, "bad.json", `{"mode":`), ErrInvalidJSON},
		{"unknown json key", writeFile(t, dir, "extra.json", `{"port": 8080}`), ErrInvalidJSON},
		{"bad mode", writeFile(t, dir, "mode.yaml", "mode: both\n"), ErrInvalidConfig},
		{"bad format", writeFile(t, dir, "format.yaml", "logging:\n  format: xml\n"), ErrInvalidConfig},
		{"bad level", writeFile(t, dir, "level.yaml", "logging:\n  level: trace\n"), ErrInvalidConfig},
		{"empty glob", writeFile(t, dir, "glob.yaml", "rules:\n  - \"\"\n"), ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(tt.path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := LoadFromFile(dir)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	t.Run("defaults when nothing is found", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		t.Setenv(EnvLogLevel, "")
		cfg, err := Resolve("", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "", cfg.Path())
		assert.Equal(t, ".", cfg.BaseDir())
		assert.Equal(t, "consumer", cfg.Mode)
	})

	t.Run("default file name in dir", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		dir := t.TempDir()
		path := writeFile(t, dir, "pactcore.yml", "mode: provider\n")
		cfg, err := Resolve("", dir)
		require.NoError(t, err)
		assert.Equal(t, path, cfg.Path())
	})

	t.Run("environment names the file", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "custom.yaml", "mode: provider\n")
		t.Setenv(EnvConfig, path)
		cfg, err := Resolve("", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, path, cfg.Path())
	})

	t.Run("explicit path wins", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfig, writeFile(t, dir, "env.yaml", "mode: provider\n"))
		explicit := writeFile(t, dir, "flag.yaml", "mode: consumer\n")
		cfg, err := Resolve(explicit, dir)
		require.NoError(t, err)
		assert.Equal(t, "consumer", cfg.Mode)
	})

	t.Run("explicit missing file", func(t *testing.T) {
		_, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"), ".")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("log level override", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		t.Setenv(EnvLogLevel, "warn")
		dir := t.TempDir()
		writeFile(t, dir, "pactcore.yaml", "logging:\n  level: debug\n")
		cfg, err := Resolve("", dir)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("invalid log level override", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		t.Setenv(EnvLogLevel, "loud")
		_, err := Resolve("", t.TempDir())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestToYAML_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Mode = "provider"
	cfg.Generators = []string{"g/*.yaml"}
	cfg.Context["token"] = "abc"

	data, err := ToYAML(cfg)
	require.NoError(t, err)
	back, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)

	js, err := ToJSON(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"mode": "provider"`)

	_, err = ToYAML(nil)
	assert.Error(t, err)
}

// ABOUTME: Tests for config loading, env overrides, saving, and validation
// ABOUTME: Uses temp directories for isolated file-based tests

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTOMATE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AUTOMATE_MODEL", "")
	t.Setenv("AUTOMATE_ENDPOINT", "")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearCredentialEnv(t)

	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, s.Endpoint)
	assert.Equal(t, DefaultModel, s.Model)
	assert.True(t, s.SupportsVision)
	assert.Equal(t, DefaultMaxTokens, s.MaxTokens)
	assert.InDelta(t, DefaultTemperature, s.Temperature, 1e-9)
	assert.Equal(t, DefaultRequestTimeout, s.RequestTimeout)
	assert.Equal(t, DefaultTreeDepth, s.TreeDepth)
	assert.NotEmpty(t, s.GuidesDir)
	assert.Empty(t, s.APIKey)
}

func TestLoad_FileValues(t *testing.T) {
	clearCredentialEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint": "http://localhost:11434/v1",
		"api_key": "sk-file",
		"model": "llava",
		"supports_vision": false,
		"max_tokens": 512,
		"temperature": 0.2,
		"request_timeout": "30s"
	}`), 0o600))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434/v1", s.Endpoint)
	assert.Equal(t, "sk-file", s.APIKey)
	assert.Equal(t, "llava", s.Model)
	assert.False(t, s.SupportsVision)
	assert.Equal(t, 512, s.MaxTokens)
	assert.InDelta(t, 0.2, s.Temperature, 1e-9)
	assert.Equal(t, 30*time.Second, s.RequestTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("AUTOMATE_MODEL", "gpt-4o-mini")
	t.Setenv("AUTOMATE_API_KEY", "sk-env")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model":"from-file","api_key":"sk-file"}`), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", s.Model)
	assert.Equal(t, "sk-env", s.APIKey)
}

func TestLoad_OpenAIKeyFallback(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	s, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "sk-openai", s.APIKey)
}

func TestLoad_ExpandsEnvReferences(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("MY_SECRET", "sk-expanded")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_key":"${MY_SECRET}"}`), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-expanded", s.APIKey)
}

func TestLoad_MalformedFile(t *testing.T) {
	clearCredentialEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestSaveThenLoad(t *testing.T) {
	clearCredentialEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	want := Default()
	want.APIKey = "sk-saved"
	want.Model = "gpt-4.1"
	want.RequestTimeout = 90 * time.Second

	require.NoError(t, Save(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-saved", got.APIKey)
	assert.Equal(t, "gpt-4.1", got.Model)
	assert.Equal(t, 90*time.Second, got.RequestTimeout)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Settings {
		s := Default()
		s.APIKey = "sk-x"
		return s
	}

	require.NoError(t, valid().Validate())

	s := valid()
	s.APIKey = "  "
	assert.ErrorIs(t, s.Validate(), ErrMissingAPIKey)

	s = valid()
	s.Endpoint = "not a url"
	assert.ErrorContains(t, s.Validate(), "invalid endpoint")

	s = valid()
	s.MaxTokens = 0
	assert.ErrorContains(t, s.Validate(), "max_tokens")

	s = valid()
	s.Temperature = 3
	assert.ErrorContains(t, s.Validate(), "temperature")
}

func TestRedacted(t *testing.T) {
	t.Parallel()

	s := Default()
	s.APIKey = "sk-1234567890abcd"
	r := s.Redacted()
	assert.Equal(t, "sk-...abcd", r.APIKey)
	assert.Equal(t, "sk-1234567890abcd", s.APIKey)

	s.APIKey = "short"
	assert.Equal(t, "****", s.Redacted().APIKey)
}

func TestPaths(t *testing.T) {
	t.Setenv(HomeEnv, "")

	assert.Equal(t, ".automate", filepath.Base(GlobalDir()))
	assert.Equal(t, filepath.Join(GlobalDir(), "config.json"), GlobalConfigFile())
	assert.Equal(t, filepath.Join(GlobalDir(), "guides"), DefaultGuidesDir())
}

func TestPathsHonorHomeEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	assert.Equal(t, dir, GlobalDir())
	assert.Equal(t, filepath.Join(dir, "guides"), DefaultGuidesDir())
}

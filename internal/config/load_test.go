package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	// Save current environment values
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	// Return cleanup function
	return func() {
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies that Load fills every section from built-in defaults
// when only the required key is set.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"CAROUSEL_LLM_GEMINI_API_KEY": "test-api-key",
		"CAROUSEL_SERVER_PORT":        "",
		"CAROUSEL_SERVER_LOG_LEVEL":   "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10*time.Minute, cfg.Server.AIRenderTimeout)
	assert.Equal(t, int64(5<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "https://api.kie.ai/api/v1/jobs", cfg.ImageJobs.BaseURL)
	assert.Equal(t, 30, cfg.ImageJobs.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.ImageJobs.PollInterval)
	assert.False(t, cfg.ImageJobs.AIEnabled())
	assert.Equal(t, StorageFS, cfg.Storage.Backend)
	assert.Equal(t, "/generated", cfg.Storage.PublicPath)
	assert.Equal(t, 1080, cfg.Render.Width)
	assert.Equal(t, 1080, cfg.Render.Height)
}

// TestLoadFromEnv verifies that Load reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"CAROUSEL_SERVER_PORT":              "9090",
		"CAROUSEL_SERVER_LOG_LEVEL":         "debug",
		"CAROUSEL_SERVER_ANALYZE_TIMEOUT":   "15s",
		"CAROUSEL_LLM_GEMINI_API_KEY":       "test-api-key",
		"CAROUSEL_IMAGE_JOBS_ENABLED":       "true",
		"CAROUSEL_IMAGE_JOBS_API_KEY":       "kie-key",
		"CAROUSEL_IMAGE_JOBS_MAX_ATTEMPTS":  "45",
		"CAROUSEL_STORAGE_BACKEND":          "memory",
		"CAROUSEL_STORAGE_MINIO_BUCKET":     "slides",
		"CAROUSEL_RENDER_WIDTH":             "540",
		"CAROUSEL_IMAGE_JOBS_POLL_INTERVAL": "500ms",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.Server.AnalyzeTimeout)
	assert.Equal(t, "test-api-key", cfg.LLM.GeminiAPIKey)
	assert.True(t, cfg.ImageJobs.AIEnabled())
	assert.Equal(t, 45, cfg.ImageJobs.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.ImageJobs.PollInterval)
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.Equal(t, "slides", cfg.Storage.MinIO.Bucket)
	assert.Equal(t, 540, cfg.Render.Width)
}

// TestLoadFromFile verifies that an explicit config file is read and that
// environment variables still win over it.
func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carousel.yaml")
	content := []byte(`
server:
  port: 7070
  log_level: warn
llm:
  gemini_api_key: file-key
storage:
  backend: minio
  minio:
    endpoint: localhost:9000
    bucket: carousel
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cleanup := setupEnv(t, map[string]string{
		"CAROUSEL_CONFIG_FILE":      path,
		"CAROUSEL_SERVER_LOG_LEVEL": "error",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "error", cfg.Server.LogLevel)
	assert.Equal(t, "file-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, StorageMinIO, cfg.Storage.Backend)
	assert.Equal(t, "localhost:9000", cfg.Storage.MinIO.Endpoint)
}

// TestLoadMissingFile verifies that an explicit but missing config file is an error.
func TestLoadMissingFile(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"CAROUSEL_CONFIG_FILE":        filepath.Join(t.TempDir(), "missing.yaml"),
		"CAROUSEL_LLM_GEMINI_API_KEY": "test-api-key",
	})
	defer cleanup()

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing Gemini API key",
			envVars: map[string]string{
				"CAROUSEL_SERVER_PORT":        "9090",
				"CAROUSEL_LLM_GEMINI_API_KEY": "",
			},
		},
		{
			name: "Invalid port number",
			envVars: map[string]string{
				"CAROUSEL_SERVER_PORT":        "999999",
				"CAROUSEL_LLM_GEMINI_API_KEY": "test-api-key",
			},
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"CAROUSEL_SERVER_LOG_LEVEL":   "invalid-level",
				"CAROUSEL_LLM_GEMINI_API_KEY": "test-api-key",
			},
		},
		{
			name: "Unknown storage backend",
			envVars: map[string]string{
				"CAROUSEL_STORAGE_BACKEND":    "ftp",
				"CAROUSEL_LLM_GEMINI_API_KEY": "test-api-key",
			},
		},
		{
			name: "MinIO backend without endpoint",
			envVars: map[string]string{
				"CAROUSEL_STORAGE_BACKEND":    "minio",
				"CAROUSEL_LLM_GEMINI_API_KEY": "test-api-key",
			},
		},
		{
			name: "Zero poll attempts",
			envVars: map[string]string{
				"CAROUSEL_IMAGE_JOBS_MAX_ATTEMPTS": "0",
				"CAROUSEL_LLM_GEMINI_API_KEY":      "test-api-key",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}

func TestAIEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ImageJobsConfig
		want bool
	}{
		{"disabled", ImageJobsConfig{Enabled: false, APIKey: "key"}, false},
		{"no_key", ImageJobsConfig{Enabled: true}, false},
		{"placeholder_key", ImageJobsConfig{Enabled: true, APIKey: "your_kie_api_key_here"}, false},
		{"enabled", ImageJobsConfig{Enabled: true, APIKey: "key"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cfg.AIEnabled())
		})
	}
}

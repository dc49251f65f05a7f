package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/carousel-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Port:             8080,
			LogLevel:         "info",
			AnalyzeTimeout:   time.Minute,
			StructureTimeout: time.Minute,
			RenderTimeout:    time.Minute,
			AIRenderTimeout:  10 * time.Minute,
			ShutdownTimeout:  time.Second,
			MaxUploadBytes:   5 << 20,
		},
		LLM: config.LLMConfig{
			GeminiAPIKey: "test-gemini-key",
			FastModel:    "gemini-2.0-flash",
			SmartModel:   "gemini-2.5-flash",
		},
		ImageJobs: config.ImageJobsConfig{
			BaseURL:      "https://api.kie.ai/api/v1/jobs",
			Model:        "google/nano-banana",
			MaxAttempts:  30,
			PollInterval: 2 * time.Second,
			HTTPTimeout:  30 * time.Second,
		},
		Storage: config.StorageConfig{
			Backend:    config.StorageMemory,
			PublicPath: "/generated",
			MemoryTTL:  time.Hour,
		},
		Render: config.RenderConfig{Width: 1080, Height: 1080},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewTemplateOnly(t *testing.T) {
	t.Parallel()

	app, err := New(context.Background(), testConfig(t), discardLogger())
	require.NoError(t, err)

	assert.NotNil(t, app.Service)
	assert.NotNil(t, app.Pipeline)
	assert.NotNil(t, app.Store)
	assert.False(t, app.Renderer.AIEnabled())
}

func TestNewWithAI(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.ImageJobs.Enabled = true
	cfg.ImageJobs.APIKey = "real-looking-key"

	app, err := New(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.True(t, app.Renderer.AIEnabled())
}

func TestNewPlaceholderKeyKeepsAIOff(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.ImageJobs.Enabled = true
	cfg.ImageJobs.APIKey = "your_kie_api_key_here"

	app, err := New(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.False(t, app.Renderer.AIEnabled())
}

func TestNewFSStore(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Storage.Backend = config.StorageFS
	cfg.Storage.Dir = filepath.Join(t.TempDir(), "generated")

	_, err := New(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), nil, discardLogger())
	assert.Error(t, err)

	_, err = New(context.Background(), testConfig(t), nil)
	assert.Error(t, err)

	cfg := testConfig(t)
	cfg.LLM.GeminiAPIKey = ""
	_, err = New(context.Background(), cfg, discardLogger())
	assert.ErrorContains(t, err, "LLM client")

	cfg = testConfig(t)
	cfg.Render.EmojiFontPath = filepath.Join(t.TempDir(), "missing.ttf")
	_, err = New(context.Background(), cfg, discardLogger())
	assert.ErrorContains(t, err, "emoji font")
}

func TestRenderOptions(t *testing.T) {
	t.Parallel()

	opts, err := RenderOptions(config.RenderConfig{Width: 540, Height: 675}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 540, opts.Width)
	assert.Equal(t, 675, opts.Height)
	assert.Nil(t, opts.EmojiFont)
	assert.Nil(t, opts.Jobs)
}

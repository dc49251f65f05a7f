package config

import (
	"fmt"
	"time"
)

// placeholderAPIKey is the sample value shipped in .env.example files.
const placeholderAPIKey = "your_kie_api_key_here"

// Storage backends.
const (
	StorageFS     = "fs"
	StorageMinIO  = "minio"
	StorageMemory = "memory"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm" validate:"required"`
	ImageJobs ImageJobsConfig `mapstructure:"image_jobs" validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage" validate:"required"`
	Render    RenderConfig    `mapstructure:"render" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Caller-side deadlines per pipeline step. AIRenderTimeout applies to
	// render-all in AI mode, where polling runs for tens of seconds per slide.
	AnalyzeTimeout   time.Duration `mapstructure:"analyze_timeout" validate:"gt=0"`
	StructureTimeout time.Duration `mapstructure:"structure_timeout" validate:"gt=0"`
	RenderTimeout    time.Duration `mapstructure:"render_timeout" validate:"gt=0"`
	AIRenderTimeout  time.Duration `mapstructure:"ai_render_timeout" validate:"gt=0"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	// MaxUploadBytes caps the reference image size.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	FastModel    string `mapstructure:"fast_model" validate:"required"`
	SmartModel   string `mapstructure:"smart_model" validate:"required"`
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// ImageJobsConfig configures the asynchronous image-generation service.
type ImageJobsConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	APIKey           string        `mapstructure:"api_key"`
	BaseURL          string        `mapstructure:"base_url" validate:"required,url"`
	Model            string        `mapstructure:"model" validate:"required"`
	MaxAttempts      int           `mapstructure:"max_attempts" validate:"gt=0"`
	PollInterval     time.Duration `mapstructure:"poll_interval" validate:"gte=0"`
	SubmitsPerMinute int           `mapstructure:"submits_per_minute" validate:"gte=0"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout" validate:"gt=0"`
	PreferIPv4       bool          `mapstructure:"prefer_ipv4"`
}

// AIEnabled reports whether AI rendering can be offered: the flag is on and
// a real API key is present.
func (c ImageJobsConfig) AIEnabled() bool {
	return c.Enabled && c.APIKey != "" && c.APIKey != placeholderAPIKey
}

// StorageConfig selects and configures the batch image store.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=fs minio memory"`
	// Dir is the filesystem root for the fs backend.
	Dir string `mapstructure:"dir"`
	// PublicPath is the URL prefix under which stored slides are served.
	PublicPath string        `mapstructure:"public_path" validate:"required,startswith=/"`
	MemoryTTL  time.Duration `mapstructure:"memory_ttl" validate:"gte=0"`
	MinIO      MinIOConfig   `mapstructure:"minio"`
}

// MinIOConfig configures the S3-compatible object store backend.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// RenderConfig configures the template renderer output.
type RenderConfig struct {
	Width  int `mapstructure:"width" validate:"gt=0,lte=4096"`
	Height int `mapstructure:"height" validate:"gt=0,lte=4096"`
	// EmojiFontPath optionally points at a TrueType font with emoji glyphs.
	EmojiFontPath string `mapstructure:"emoji_font_path" validate:"omitempty,file"`
}

// validateBackend checks the settings each storage backend needs.
func (c StorageConfig) validateBackend() error {
	switch c.Backend {
	case StorageFS:
		if c.Dir == "" {
			return fmt.Errorf("storage.dir is required for the %s backend", StorageFS)
		}
	case StorageMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return fmt.Errorf("storage.minio.endpoint and storage.minio.bucket are required for the %s backend", StorageMinIO)
		}
	}
	return nil
}

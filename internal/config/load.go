package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every environment variable, e.g. CAROUSEL_SERVER_PORT.
const envPrefix = "CAROUSEL"

// configFileEnv names an explicit config file path.
const configFileEnv = "CAROUSEL_CONFIG_FILE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.analyze_timeout", "60s")
	v.SetDefault("server.structure_timeout", "90s")
	v.SetDefault("server.render_timeout", "2m")
	v.SetDefault("server.ai_render_timeout", "10m")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.max_upload_bytes", 5<<20)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.fast_model", "gemini-2.0-flash")
	v.SetDefault("llm.smart_model", "gemini-2.5-flash")
	v.SetDefault("llm.base_url", "")

	v.SetDefault("image_jobs.enabled", false)
	v.SetDefault("image_jobs.api_key", "")
	v.SetDefault("image_jobs.base_url", "https://api.kie.ai/api/v1/jobs")
	v.SetDefault("image_jobs.model", "google/nano-banana")
	v.SetDefault("image_jobs.max_attempts", 30)
	v.SetDefault("image_jobs.poll_interval", "2s")
	v.SetDefault("image_jobs.submits_per_minute", 20)
	v.SetDefault("image_jobs.http_timeout", "30s")
	v.SetDefault("image_jobs.prefer_ipv4", false)

	v.SetDefault("storage.backend", StorageFS)
	v.SetDefault("storage.dir", "public/generated")
	v.SetDefault("storage.public_path", "/generated")
	v.SetDefault("storage.memory_ttl", "1h")
	v.SetDefault("storage.minio.endpoint", "")
	v.SetDefault("storage.minio.access_key", "")
	v.SetDefault("storage.minio.secret_key", "")
	v.SetDefault("storage.minio.bucket", "carousel")
	v.SetDefault("storage.minio.use_ssl", false)

	v.SetDefault("render.width", 1080)
	v.SetDefault("render.height", 1080)
	v.SetDefault("render.emoji_font_path", "")
}

// Load configuration from defaults, an optional config file and environment
// variables. Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(configFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and cross-field rules.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if err := cfg.Storage.validateBackend(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

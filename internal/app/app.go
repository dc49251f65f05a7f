// Package app wires the carousel pipeline from configuration. Both binaries
// build their components here so the server and the CLI run the same stack.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/carousel-api/internal/config"
	"github.com/phrazzld/carousel-api/internal/generation"
	"github.com/phrazzld/carousel-api/internal/imagejob"
	"github.com/phrazzld/carousel-api/internal/platform/gemini"
	"github.com/phrazzld/carousel-api/internal/platform/httpclient"
	"github.com/phrazzld/carousel-api/internal/render"
	"github.com/phrazzld/carousel-api/internal/service"
	"github.com/phrazzld/carousel-api/internal/store"
)

// Application holds the shared dependencies of one process.
type Application struct {
	Config *config.Config
	Logger *slog.Logger

	Store    store.BatchStore
	Renderer *render.Renderer
	Service  service.CarouselService
	Pipeline *service.Pipeline
}

// New builds every component from cfg. AI rendering is wired only when the
// image job service is enabled and has a real API key.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	llmHTTP := httpclient.New(httpclient.Options{
		Timeout: cfg.Server.StructureTimeout,
		Logger:  logger.With("component", "llm_http"),
	})
	llm, err := gemini.New(ctx, logger, cfg.LLM, llmHTTP)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	generator, err := generation.NewGenerator(llm, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}

	imageHTTP := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.ImageJobs.PreferIPv4,
		Timeout:    cfg.ImageJobs.HTTPTimeout,
		Logger:     logger.With("component", "image_http"),
	})
	renderOpts, err := RenderOptions(cfg.Render, logger)
	if err != nil {
		return nil, err
	}
	renderOpts.HTTPClient = imageHTTP

	if cfg.ImageJobs.AIEnabled() {
		jobs, err := imagejob.New(imagejob.Options{
			BaseURL:          cfg.ImageJobs.BaseURL,
			APIKey:           cfg.ImageJobs.APIKey,
			Model:            cfg.ImageJobs.Model,
			HTTPClient:       imageHTTP,
			Logger:           logger,
			SubmitsPerMinute: cfg.ImageJobs.SubmitsPerMinute,
			MaxAttempts:      cfg.ImageJobs.MaxAttempts,
			PollInterval:     cfg.ImageJobs.PollInterval,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize image job client: %w", err)
		}
		renderOpts.Jobs = jobs
		renderOpts.Poll = jobs.Defaults()
		logger.Info("AI rendering enabled", "model", cfg.ImageJobs.Model)
	} else {
		logger.Info("AI rendering disabled, template mode only")
	}

	renderer, err := render.New(renderOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	batches, err := store.New(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s store: %w", cfg.Storage.Backend, err)
	}

	svc, err := service.NewCarouselService(generator, renderer, batches, cfg.Storage.PublicPath, service.Timeouts{
		Analyze:   cfg.Server.AnalyzeTimeout,
		Structure: cfg.Server.StructureTimeout,
		Render:    cfg.Server.RenderTimeout,
		AIRender:  cfg.Server.AIRenderTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize carousel service: %w", err)
	}

	pipeline, err := service.NewPipeline(svc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	logger.Info("application initialized",
		"storage_backend", cfg.Storage.Backend,
		"render_width", renderOpts.Width,
		"render_height", renderOpts.Height)

	return &Application{
		Config:   cfg,
		Logger:   logger,
		Store:    batches,
		Renderer: renderer,
		Service:  svc,
		Pipeline: pipeline,
	}, nil
}

// RenderOptions builds template-mode renderer options from cfg, loading the
// emoji font when one is configured.
func RenderOptions(cfg config.RenderConfig, logger *slog.Logger) (render.Options, error) {
	opts := render.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		Logger: logger,
	}
	if cfg.EmojiFontPath != "" {
		font, err := os.ReadFile(cfg.EmojiFontPath)
		if err != nil {
			return render.Options{}, fmt.Errorf("failed to read emoji font: %w", err)
		}
		opts.EmojiFont = font
	}
	return opts, nil
}

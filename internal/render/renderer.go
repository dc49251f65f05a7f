// Package render turns slide specs into fixed-size PNG images, either by
// drawing a template scene locally or by asking an external image model to
// draw the whole slide.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/carousel-api/internal/catalog"
	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/imagejob"
	"github.com/phrazzld/carousel-api/internal/redact"
)

// Default output size.
const (
	DefaultWidth  = 1080
	DefaultHeight = 1080
)

const (
	opRenderSlide = "render slide"
	opRenderAll   = "render slides"
)

// JobResolver turns an image prompt into a downloadable image URL.
// *imagejob.Client implements it.
type JobResolver interface {
	Resolve(ctx context.Context, prompt string, opts imagejob.ResolveOptions) (string, error)
}

// Options configures a Renderer.
type Options struct {
	Width  int
	Height int

	// Jobs resolves AI-mode prompts. Nil disables AI mode.
	Jobs JobResolver
	// Poll is the poll budget passed to Jobs for each slide.
	Poll imagejob.ResolveOptions
	// HTTPClient downloads AI-mode images.
	HTTPClient *http.Client

	// EmojiFont is an optional TrueType/OpenType font used for emoji glyphs
	// when rasterizing. Without it emoji appear only in SVG previews.
	EmojiFont []byte

	Logger *slog.Logger
}

// Renderer draws slides. It is safe for concurrent use.
type Renderer struct {
	width, height int
	raster        *rasterizer
	jobs          JobResolver
	poll          imagejob.ResolveOptions
	httpClient    *http.Client
	logger        *slog.Logger
}

// New creates a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}

	raster, err := newRasterizer(opts.EmojiFont)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		width:      opts.Width,
		height:     opts.Height,
		raster:     raster,
		jobs:       opts.Jobs,
		poll:       opts.Poll,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger.With("component", "renderer"),
	}, nil
}

// AIEnabled reports whether AI mode can be used.
func (r *Renderer) AIEnabled() bool {
	return r.jobs != nil
}

// Scene lays out spec for template mode without drawing it.
func (r *Renderer) Scene(spec domain.SlideSpec, templateID string) Scene {
	tpl := catalog.Resolve(templateID, spec.BackgroundColor)
	return BuildScene(spec, tpl, r.width, r.height)
}

// PreviewSVG returns the template-mode scene for spec as SVG markup.
func (r *Renderer) PreviewSVG(spec domain.SlideSpec, templateID string) []byte {
	return r.Scene(spec, templateID).SVG()
}

// RenderSlide draws one slide as PNG. topic and total describe the carousel
// the slide belongs to and only affect AI mode.
func (r *Renderer) RenderSlide(ctx context.Context, spec domain.SlideSpec, mode domain.RenderMode, topic string, total int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.FromContext(opRenderSlide, "", err)
	}
	if mode.IsAI() {
		return r.renderAI(ctx, spec, topic, total)
	}
	return r.renderTemplate(spec, mode.TemplateID())
}

func (r *Renderer) renderTemplate(spec domain.SlideSpec, templateID string) ([]byte, error) {
	img, err := r.raster.Rasterize(r.Scene(spec, templateID))
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", opRenderSlide, spec.Order, err)
	}
	return encodePNG(img)
}

// RenderAll draws slides one after another in order. The first failure
// aborts the batch and no images are returned.
func (r *Renderer) RenderAll(ctx context.Context, slides []domain.SlideSpec, mode domain.RenderMode, topic string) ([][]byte, error) {
	if len(slides) == 0 {
		return nil, domain.NewValidationError("slides", "at least one slide is required", nil)
	}

	start := time.Now()
	r.logger.InfoContext(ctx, "rendering slides", "count", len(slides), "mode", mode.String())

	images := make([][]byte, 0, len(slides))
	for i, spec := range slides {
		img, err := r.RenderSlide(ctx, spec, mode, topic, len(slides))
		if err != nil {
			r.logger.ErrorContext(ctx, "slide render failed, aborting batch",
				"slide_index", i,
				"order", spec.Order,
				"mode", mode.String(),
				"error", redact.Error(err))
			return nil, fmt.Errorf("%s: slide %d: %w", opRenderAll, spec.Order, err)
		}
		images = append(images, img)
	}

	r.logger.InfoContext(ctx, "slides rendered",
		"count", len(images),
		"mode", mode.String(),
		"duration_ms", time.Since(start).Milliseconds())
	return images, nil
}

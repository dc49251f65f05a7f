package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/generation"
	"github.com/phrazzld/carousel-api/internal/redact"
	"github.com/phrazzld/carousel-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// Generator produces analyses and carousel scripts.
// *generation.Generator implements it.
type Generator interface {
	AnalyzeMarket(ctx context.Context, theme string) (string, error)
	AnalyzeReference(ctx context.Context, img generation.Image) (string, error)
	GenerateStructure(ctx context.Context, req generation.StructureRequest) (*domain.CarouselStructure, error)
	RegenerateSlide(ctx context.Context, index int, current domain.SlideSpec, sc domain.SlideContext) (domain.SlideSpec, error)
}

// Renderer draws slides. *render.Renderer implements it.
type Renderer interface {
	RenderAll(ctx context.Context, slides []domain.SlideSpec, mode domain.RenderMode, topic string) ([][]byte, error)
	PreviewSVG(spec domain.SlideSpec, templateID string) []byte
	AIEnabled() bool
}

// Timeouts are the caller-side deadlines per operation. Zero disables one.
type Timeouts struct {
	Analyze   time.Duration
	Structure time.Duration
	Render    time.Duration
	// AIRender applies instead of Render in AI mode, where each slide may
	// poll the image service for tens of seconds.
	AIRender time.Duration
}

// AnalyzeInput is the business theme and an optional reference image.
type AnalyzeInput struct {
	Theme     string
	Reference *generation.Image
}

// AnalyzeResult holds the analyses. ReferenceAnalysis is empty without a
// reference image.
type AnalyzeResult struct {
	MarketAnalysis    string `json:"marketAnalysis"`
	ReferenceAnalysis string `json:"referenceAnalysis,omitempty"`
}

// RegenerateInput identifies the slide to rewrite and its carousel.
type RegenerateInput struct {
	SlideIndex int
	Current    domain.SlideSpec
	Context    domain.SlideContext
}

// ImagesInput is a render-all request.
type ImagesInput struct {
	Slides       []domain.SlideSpec
	TemplateID   string
	VisualMethod domain.VisualMethod
	Topic        string
}

// BatchDownload is a stored batch as offered for download: the image itself
// when the batch has a single slide, otherwise the slide URLs.
type BatchDownload struct {
	BatchID  string
	URLs     []string
	FileName string
	Image    []byte
}

// Single reports whether the download is one image.
func (d BatchDownload) Single() bool {
	return d.Image != nil
}

// CarouselService sequences the generator, renderer and store behind the
// operations exposed to clients.
type CarouselService interface {
	// Analyze runs market analysis and, when a reference is given, reference
	// analysis concurrently.
	Analyze(ctx context.Context, in AnalyzeInput) (*AnalyzeResult, error)

	// GenerateStructure produces a carousel script.
	GenerateStructure(ctx context.Context, req generation.StructureRequest) (*domain.CarouselStructure, error)

	// RegenerateSlide rewrites one slide.
	RegenerateSlide(ctx context.Context, in RegenerateInput) (domain.SlideSpec, error)

	// GenerateImages renders every slide under a new batch id and stores
	// the batch once all slides rendered.
	GenerateImages(ctx context.Context, in ImagesInput) (*domain.Batch, error)

	// FetchBatch returns a stored batch for download.
	FetchBatch(ctx context.Context, batchID string) (*BatchDownload, error)

	// OpenSlide returns one stored slide image.
	OpenSlide(ctx context.Context, batchID, name string) ([]byte, error)

	// PreviewSlide returns the template-mode scene of one slide as SVG.
	PreviewSlide(spec domain.SlideSpec, templateID string) []byte
}

// carouselServiceImpl implements the CarouselService interface
type carouselServiceImpl struct {
	generator  Generator
	renderer   Renderer
	store      store.BatchStore
	publicPath string
	timeouts   Timeouts
	logger     *slog.Logger
}

// NewCarouselService creates a new CarouselService
// It returns an error if any of the required dependencies are nil.
func NewCarouselService(
	generator Generator,
	renderer Renderer,
	batches store.BatchStore,
	publicPath string,
	timeouts Timeouts,
	logger *slog.Logger,
) (CarouselService, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if renderer == nil {
		return nil, errors.New("renderer cannot be nil")
	}
	if batches == nil {
		return nil, errors.New("store cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if publicPath == "" {
		publicPath = "/generated"
	}

	return &carouselServiceImpl{
		generator:  generator,
		renderer:   renderer,
		store:      batches,
		publicPath: publicPath,
		timeouts:   timeouts,
		logger:     logger.With("component", "carousel_service"),
	}, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Analyze implements CarouselService.
func (s *carouselServiceImpl) Analyze(ctx context.Context, in AnalyzeInput) (*AnalyzeResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeouts.Analyze)
	defer cancel()

	var result AnalyzeResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report, err := s.generator.AnalyzeMarket(gctx, in.Theme)
		if err != nil {
			return err
		}
		result.MarketAnalysis = report
		return nil
	})

	if in.Reference != nil {
		ref := *in.Reference
		g.Go(func() error {
			report, err := s.generator.AnalyzeReference(gctx, ref)
			if err != nil {
				return err
			}
			result.ReferenceAnalysis = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.WarnContext(ctx, "analysis failed",
			"kind", domain.KindOf(err).String(),
			"has_reference", in.Reference != nil,
			"error", redact.Error(err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "analysis complete",
		"market_length", len(result.MarketAnalysis),
		"reference_length", len(result.ReferenceAnalysis))
	return &result, nil
}

// GenerateStructure implements CarouselService.
func (s *carouselServiceImpl) GenerateStructure(ctx context.Context, req generation.StructureRequest) (*domain.CarouselStructure, error) {
	ctx, cancel := withTimeout(ctx, s.timeouts.Structure)
	defer cancel()

	structure, err := s.generator.GenerateStructure(ctx, req)
	if err != nil {
		s.logger.WarnContext(ctx, "structure generation failed",
			"kind", domain.KindOf(err).String(),
			"error", redact.Error(err))
		return nil, err
	}
	return structure, nil
}

// RegenerateSlide implements CarouselService.
func (s *carouselServiceImpl) RegenerateSlide(ctx context.Context, in RegenerateInput) (domain.SlideSpec, error) {
	if in.SlideIndex < 0 {
		return domain.SlideSpec{}, domain.NewValidationError("slideIndex", "must not be negative", nil)
	}

	ctx, cancel := withTimeout(ctx, s.timeouts.Structure)
	defer cancel()

	slide, err := s.generator.RegenerateSlide(ctx, in.SlideIndex, in.Current, in.Context)
	if err != nil {
		s.logger.WarnContext(ctx, "slide regeneration failed",
			"slide_index", in.SlideIndex,
			"kind", domain.KindOf(err).String(),
			"error", redact.Error(err))
		return domain.SlideSpec{}, err
	}
	return slide, nil
}

// GenerateImages implements CarouselService. Slides are renumbered 1..N in
// the order given, so file names are unique within the batch.
func (s *carouselServiceImpl) GenerateImages(ctx context.Context, in ImagesInput) (*domain.Batch, error) {
	if len(in.Slides) == 0 {
		return nil, domain.NewValidationError("slides", "at least one slide is required", nil)
	}

	mode, err := domain.ParseRenderMode(in.VisualMethod, in.TemplateID)
	if err != nil {
		return nil, err
	}
	if mode.IsAI() && !s.renderer.AIEnabled() {
		return nil, domain.NewValidationError("visualMethod", "AI mode cannot be used, choose template", ErrAIDisabled)
	}

	timeout := s.timeouts.Render
	if mode.IsAI() {
		timeout = s.timeouts.AIRender
	}
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	slides := make([]domain.SlideSpec, len(in.Slides))
	copy(slides, in.Slides)
	for i := range slides {
		slides[i].Order = i + 1
	}

	images, err := s.renderer.RenderAll(ctx, slides, mode, in.Topic)
	if err != nil {
		return nil, err
	}
	if len(images) != len(slides) {
		return nil, fmt.Errorf("renderer returned %d images for %d slides", len(images), len(slides))
	}

	batchID := uuid.NewString()
	files := make([]store.File, len(slides))
	batch := &domain.Batch{ID: batchID, Slides: make([]domain.GeneratedSlide, len(slides))}
	for i, spec := range slides {
		name := domain.SlideFileName(spec.Order)
		files[i] = store.File{Name: name, Data: images[i]}
		batch.Slides[i] = domain.GeneratedSlide{
			Order:    spec.Order,
			ImageURL: store.PublicURL(s.publicPath, batchID, name),
			Title:    spec.Title,
			Content:  spec.Content,
			Image:    images[i],
		}
	}

	if err := s.store.Save(ctx, batchID, files); err != nil {
		s.logger.ErrorContext(ctx, "failed to store batch", "batch_id", batchID, "error", redact.Error(err))
		return nil, fmt.Errorf("store batch %s: %w", batchID, err)
	}

	s.logger.InfoContext(ctx, "batch generated",
		"batch_id", batchID,
		"slides", len(slides),
		"mode", mode.String())
	return batch, nil
}

// FetchBatch implements CarouselService.
func (s *carouselServiceImpl) FetchBatch(ctx context.Context, batchID string) (*BatchDownload, error) {
	names, err := s.store.List(ctx, batchID)
	if err != nil {
		return nil, mapStoreError(err, batchID)
	}
	if len(names) == 0 {
		return nil, &domain.Error{Kind: domain.KindNotFound, Message: fmt.Sprintf("batch %q is empty", batchID), Err: ErrEmptyBatch}
	}

	dl := &BatchDownload{BatchID: batchID}
	if len(names) == 1 {
		data, err := s.store.Open(ctx, batchID, names[0])
		if err != nil {
			return nil, mapStoreError(err, batchID)
		}
		dl.FileName = names[0]
		dl.Image = data
		return dl, nil
	}

	dl.URLs = make([]string, len(names))
	for i, name := range names {
		dl.URLs[i] = store.PublicURL(s.publicPath, batchID, name)
	}
	return dl, nil
}

// OpenSlide implements CarouselService.
func (s *carouselServiceImpl) OpenSlide(ctx context.Context, batchID, name string) ([]byte, error) {
	data, err := s.store.Open(ctx, batchID, name)
	if err != nil {
		return nil, mapStoreError(err, batchID+"/"+name)
	}
	return data, nil
}

// PreviewSlide implements CarouselService.
func (s *carouselServiceImpl) PreviewSlide(spec domain.SlideSpec, templateID string) []byte {
	return s.renderer.PreviewSVG(spec, templateID)
}

// mapStoreError converts store lookups into domain errors. Keys that cannot
// exist are reported as not found.
func mapStoreError(err error, id string) error {
	switch {
	case store.IsNotFoundError(err), errors.Is(err, store.ErrInvalidKey):
		return domain.NewNotFoundError("batch", id)
	default:
		return err
	}
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/generation"
)

// RunInput is everything a user supplies for one carousel.
type RunInput struct {
	Theme        string
	LeadMagnet   string
	CodeWord     string
	SlideCount   int
	StylePreset  string
	Reference    *generation.Image
	VisualMethod domain.VisualMethod
	TemplateID   string
}

// Stage names a pipeline step.
type Stage string

const (
	StageAnalyze   Stage = "analyze"
	StageStructure Stage = "structure"
	StageImages    Stage = "images"
)

// Run is the state of one carousel as it moves through the pipeline. Each
// run owns its value; nothing is shared between runs.
type Run struct {
	Input     RunInput
	Analysis  *AnalyzeResult
	Structure *domain.CarouselStructure
	Batch     *domain.Batch
}

// NewRun starts a run for in.
func NewRun(in RunInput) *Run {
	return &Run{Input: in}
}

// Next returns the first stage that has not completed, or "" when done.
func (r *Run) Next() Stage {
	switch {
	case r.Analysis == nil:
		return StageAnalyze
	case r.Structure == nil:
		return StageStructure
	case r.Batch == nil:
		return StageImages
	default:
		return ""
	}
}

// StageError reports the stage at which a run stopped.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return string(e.Stage) + " stage failed: " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Pipeline drives runs through analyze, structure and images.
type Pipeline struct {
	svc    CarouselService
	logger *slog.Logger
}

// NewPipeline creates a Pipeline over svc.
func NewPipeline(svc CarouselService, logger *slog.Logger) (*Pipeline, error) {
	if svc == nil {
		return nil, errors.New("service cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Pipeline{svc: svc, logger: logger.With("component", "pipeline")}, nil
}

// Run executes the stages run has not completed yet. Completed stages are
// kept on failure, so calling Run again resumes from the failed stage;
// starting over with a fresh Run is always safe too.
func (p *Pipeline) Run(ctx context.Context, run *Run) error {
	for stage := run.Next(); stage != ""; stage = run.Next() {
		p.logger.InfoContext(ctx, "pipeline stage starting", "stage", string(stage))
		if err := p.step(ctx, stage, run); err != nil {
			p.logger.WarnContext(ctx, "pipeline stage failed",
				"stage", string(stage),
				"kind", domain.KindOf(err).String())
			return &StageError{Stage: stage, Err: err}
		}
	}
	return nil
}

func (p *Pipeline) step(ctx context.Context, stage Stage, run *Run) error {
	in := run.Input
	switch stage {
	case StageAnalyze:
		analysis, err := p.svc.Analyze(ctx, AnalyzeInput{Theme: in.Theme, Reference: in.Reference})
		if err != nil {
			return err
		}
		run.Analysis = analysis
	case StageStructure:
		structure, err := p.svc.GenerateStructure(ctx, generation.StructureRequest{
			SlideCount:      in.SlideCount,
			Theme:           in.Theme,
			LeadMagnet:      in.LeadMagnet,
			CodeWord:        in.CodeWord,
			MarketReport:    run.Analysis.MarketAnalysis,
			ReferenceReport: run.Analysis.ReferenceAnalysis,
			StylePreset:     in.StylePreset,
		})
		if err != nil {
			return err
		}
		run.Structure = structure
	case StageImages:
		batch, err := p.svc.GenerateImages(ctx, ImagesInput{
			Slides:       run.Structure.Slides,
			TemplateID:   in.TemplateID,
			VisualMethod: in.VisualMethod,
			Topic:        run.Structure.Topic,
		})
		if err != nil {
			return err
		}
		run.Batch = batch
	}
	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/phrazzld/carousel-api/internal/app"
	"github.com/phrazzld/carousel-api/internal/config"
	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/generation"
	"github.com/phrazzld/carousel-api/internal/service"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	theme        string
	leadMagnet   string
	codeWord     string
	slideCount   int
	stylePreset  string
	reference    string
	visualMethod string
	templateID   string
	outDir       string
}

// newGenerateCmd runs analyze, structure and images end to end.
func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a complete carousel for a business theme",
		Long: `Generate analyzes the market for a theme, writes the carousel structure and
renders every slide. Configuration is read like the server's: .env,
config.yaml and CAROUSEL_* environment variables.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.theme, "theme", "", "business theme (required)")
	f.StringVar(&opts.leadMagnet, "lead-magnet", "", "what followers get for the code word (required)")
	f.StringVar(&opts.codeWord, "code-word", "", "word followers send in direct messages (required)")
	f.IntVarP(&opts.slideCount, "slides", "n", 5, "number of slides")
	f.StringVar(&opts.stylePreset, "style", "", "style preset id")
	f.StringVar(&opts.reference, "reference", "", "reference image (jpeg, png or webp)")
	f.StringVar(&opts.visualMethod, "visual-method", string(domain.VisualMethodTemplate), "template or ai")
	f.StringVarP(&opts.templateID, "template", "t", "", "template id for template mode")
	f.StringVarP(&opts.outDir, "out", "o", "carousel", "output directory")
	return cmd
}

func (o *generateOptions) validate() error {
	switch {
	case o.theme == "":
		return errors.New("--theme is required")
	case o.leadMagnet == "":
		return errors.New("--lead-magnet is required")
	case o.codeWord == "":
		return errors.New("--code-word is required")
	case o.slideCount < domain.MinSlideCount || o.slideCount > domain.MaxSlideCount:
		return fmt.Errorf("--slides must be between %d and %d", domain.MinSlideCount, domain.MaxSlideCount)
	}
	return nil
}

func readReference(path string) (*generation.Image, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference: %w", err)
	}
	return &generation.Image{Data: data, MIMEType: http.DetectContentType(data)}, nil
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := root.newLogger(cmd)

	ref, err := readReference(opts.reference)
	if err != nil {
		return err
	}

	application, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	run := service.NewRun(service.RunInput{
		Theme:        opts.theme,
		LeadMagnet:   opts.leadMagnet,
		CodeWord:     opts.codeWord,
		SlideCount:   opts.slideCount,
		StylePreset:  opts.stylePreset,
		Reference:    ref,
		VisualMethod: domain.VisualMethod(opts.visualMethod),
		TemplateID:   opts.templateID,
	})
	if err := application.Pipeline.Run(cmd.Context(), run); err != nil {
		return err
	}

	return writeRun(cmd, opts.outDir, run)
}

// writeRun saves the structure as structure.json and every slide image.
func writeRun(cmd *cobra.Command, dir string, run *service.Run) error {
	structure, err := json.MarshalIndent(run.Structure, "", "  ")
	if err != nil {
		return fmt.Errorf("encode structure: %w", err)
	}
	if _, err := writeFile(dir, "structure.json", structure); err != nil {
		return err
	}

	for _, slide := range run.Batch.Slides {
		path, err := writeFile(dir, domain.SlideFileName(slide.Order), slide.Image)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "carousel %s: %d slides\n", run.Batch.ID, len(run.Batch.Slides))
	return nil
}

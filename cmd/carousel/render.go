package main

import (
	"fmt"
	"strings"

	"github.com/phrazzld/carousel-api/internal/app"
	"github.com/phrazzld/carousel-api/internal/config"
	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/render"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	input      string
	outDir     string
	templateID string
	width      int
	height     int
	emojiFont  string
	svg        bool
}

// newRenderCmd renders a structure in template mode. It needs no API keys.
func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a carousel structure JSON file to PNG slides",
		Long: `Render reads a carousel structure (the JSON returned by structure
generation) and draws every slide in template mode. Slides are written as
slide-1.png, slide-2.png, ... into the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "f", "-", "structure JSON file ('-' reads stdin)")
	f.StringVarP(&opts.outDir, "out", "o", "carousel", "output directory")
	f.StringVarP(&opts.templateID, "template", "t", "", "template id; empty picks by slide color")
	f.IntVar(&opts.width, "width", render.DefaultWidth, "output width in pixels")
	f.IntVar(&opts.height, "height", render.DefaultHeight, "output height in pixels")
	f.StringVar(&opts.emojiFont, "emoji-font", "", "TrueType font with emoji glyphs")
	f.BoolVar(&opts.svg, "svg", false, "also write the SVG scene of each slide")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions) error {
	log := root.newLogger(cmd)

	structure, err := readStructure(cmd, opts.input)
	if err != nil {
		return err
	}
	structure.NormalizeOrder()

	renderOpts, err := app.RenderOptions(config.RenderConfig{
		Width:         opts.width,
		Height:        opts.height,
		EmojiFontPath: opts.emojiFont,
	}, log)
	if err != nil {
		return err
	}
	renderer, err := render.New(renderOpts)
	if err != nil {
		return err
	}

	images, err := renderer.RenderAll(cmd.Context(), structure.Slides, domain.TemplateMode(opts.templateID), structure.Topic)
	if err != nil {
		return err
	}

	for i, slide := range structure.Slides {
		name := domain.SlideFileName(slide.Order)
		path, err := writeFile(opts.outDir, name, images[i])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)

		if opts.svg {
			svgName := strings.TrimSuffix(name, ".png") + ".svg"
			if _, err := writeFile(opts.outDir, svgName, renderer.PreviewSVG(slide, opts.templateID)); err != nil {
				return err
			}
		}
	}

	log.Info("carousel rendered", "slides", len(images), "dir", opts.outDir)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "carousel",
		Short:         "Generate and render slide carousels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newRenderCmd(opts), newGenerateCmd(opts))
	return cmd
}

// newLogger writes JSON logs to the command's stderr.
func (o *rootOptions) newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := logger.ParseLevel(o.logLevel)
	return logger.New(cmd.ErrOrStderr(), level)
}

// readStructure decodes a carousel structure from path, or stdin for "-".
func readStructure(cmd *cobra.Command, path string) (*domain.CarouselStructure, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open structure: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var s domain.CarouselStructure
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode structure: %w", err)
	}
	if len(s.Slides) == 0 {
		return nil, fmt.Errorf("structure has no slides")
	}
	return &s, nil
}

// writeFile writes data to dir/name, creating dir as needed.
func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

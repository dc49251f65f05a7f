package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStructure(t *testing.T, dir string) string {
	t.Helper()
	s := domain.CarouselStructure{
		Topic: "Investing",
		Slides: []domain.SlideSpec{
			{Order: 3, Title: "Hook & <tags>", Content: "Why beginners lose money", BackgroundColor: "#1a365d"},
			{Order: 1, Title: "Write GUIDE", Content: "Get the checklist"},
		},
	}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	path := filepath.Join(dir, "structure.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "", "render", "-f", writeStructure(t, dir), "-o", outDir, "--width", "540", "--height", "540", "--svg")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, filepath.Join(outDir, "slide-1.png"), lines[0])
	assert.Equal(t, filepath.Join(outDir, "slide-2.png"), lines[1])

	for _, name := range []string{"slide-1.png", "slide-2.png"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 540, 540), img.Bounds())
	}

	svg, err := os.ReadFile(filepath.Join(outDir, "slide-1.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "Hook &amp; &lt;tags&gt;")
}

func TestRenderCommandStdin(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	_, err := execute(t, `{"topic":"t","slides":[{"order":1,"title":"Only"}]}`, "render", "-o", outDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "slide-1.png"))
}

func TestRenderCommandErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := execute(t, `{"slides":[]}`, "render", "-o", dir)
	assert.ErrorContains(t, err, "no slides")

	_, err = execute(t, `not json`, "render", "-o", dir)
	assert.ErrorContains(t, err, "decode structure")

	_, err = execute(t, "", "render", "-f", filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "open structure")

	_, err = execute(t, `{"slides":[{"title":"a"}]}`, "render", "-o", dir, "--emoji-font", filepath.Join(dir, "none.ttf"))
	assert.ErrorContains(t, err, "emoji font")
}

func TestGenerateValidatesFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no theme", []string{"generate"}, "--theme"},
		{"no lead magnet", []string{"generate", "--theme", "Investing school"}, "--lead-magnet"},
		{"no code word", []string{"generate", "--theme", "Investing school", "--lead-magnet", "a checklist"}, "--code-word"},
		{"too many slides", []string{"generate", "--theme", "Investing school", "--lead-magnet", "a checklist", "--code-word", "GUIDE", "-n", "11"}, "--slides"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, "", tc.args...)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestWriteRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	run := &service.Run{
		Structure: &domain.CarouselStructure{Topic: "t", Slides: []domain.SlideSpec{{Order: 1, Title: "a"}}},
		Batch: &domain.Batch{
			ID:     "7b0c1a52-7d4b-4a8e-9f55-0a4f2d9b6c11",
			Slides: []domain.GeneratedSlide{{Order: 1, Image: []byte("png")}},
		},
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, writeRun(cmd, dir, run))

	data, err := os.ReadFile(filepath.Join(dir, "slide-1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
	assert.FileExists(t, filepath.Join(dir, "structure.json"))
	assert.Contains(t, out.String(), "carousel 7b0c1a52-7d4b-4a8e-9f55-0a4f2d9b6c11: 1 slides")
}

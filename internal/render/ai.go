package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	// Decoders for model output.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"

	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/imagejob"
	"github.com/phrazzld/carousel-api/internal/prompts"
)

const opDownloadImage = "download slide image"

// maxImageBytes caps a downloaded model image.
const maxImageBytes = 32 << 20

// renderAI asks the image model to draw the whole slide, then fits the result
// to the output size. Failures are terminal for the slide.
func (r *Renderer) renderAI(ctx context.Context, spec domain.SlideSpec, topic string, total int) ([]byte, error) {
	if r.jobs == nil {
		return nil, domain.NewValidationError("visualMethod", "AI image generation is not configured", nil)
	}

	prompt, err := r.aiPrompt(spec, topic, total)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "requesting AI slide", "order", spec.Order, "prompt_length", len(prompt))

	imageURL, err := r.jobs.Resolve(ctx, prompt, r.poll)
	if err != nil {
		return nil, err
	}

	data, err := r.download(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewMalformedOutputError(opDownloadImage, "image cannot be decoded", err)
	}

	r.logger.DebugContext(ctx, "AI slide downloaded",
		"order", spec.Order,
		"format", format,
		"width", src.Bounds().Dx(),
		"height", src.Bounds().Dy())

	return encodePNG(cover(src, r.width, r.height))
}

// aiPrompt describes the finished slide. A slide with no copy at all gets a
// text-free background prompt instead.
func (r *Renderer) aiPrompt(spec domain.SlideSpec, topic string, total int) (string, error) {
	if strings.TrimSpace(spec.Title) == "" && strings.TrimSpace(spec.Content) == "" {
		return prompts.BackgroundPrompt(spec.VisualPrompt, topic, spec.Order, total), nil
	}
	prompt, err := prompts.FullSlidePrompt(prompts.FullSlideInput{
		Order:           spec.Order,
		Total:           total,
		Title:           spec.Title,
		Content:         spec.Content,
		Emoji:           spec.Emoji,
		BackgroundColor: spec.BackgroundColor,
		Width:           r.width,
		Height:          r.height,
	})
	if err != nil {
		return "", fmt.Errorf("%s %d: %w", opRenderSlide, spec.Order, err)
	}
	return prompt, nil
}

func (r *Renderer) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, domain.NewUpstreamError(opDownloadImage, imagejob.ServiceName, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, domain.FromContext(opDownloadImage, imagejob.ServiceName, ctxErr)
		}
		return nil, domain.NewUpstreamError(opDownloadImage, imagejob.ServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUpstreamError(opDownloadImage, imagejob.ServiceName,
			fmt.Errorf("failed to download image: status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, domain.NewUpstreamError(opDownloadImage, imagejob.ServiceName, err)
	}
	if len(data) > maxImageBytes {
		return nil, domain.NewUpstreamError(opDownloadImage, imagejob.ServiceName,
			fmt.Errorf("image exceeds %d bytes", maxImageBytes))
	}
	return data, nil
}

// cover scales src to fill width x height, cropping the centered overflow.
// The output never letterboxes.
func cover(src image.Image, width, height int) *image.RGBA {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()

	crop := b
	switch {
	case sw*height > sh*width:
		cw := sh * width / height
		x0 := b.Min.X + (sw-cw)/2
		crop = image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	case sw*height < sh*width:
		ch := sw * height / width
		y0 := b.Min.Y + (sh-ch)/2
		crop = image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}

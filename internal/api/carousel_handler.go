package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/carousel-api/internal/api/shared"
	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/service"
)

// DefaultMaxUploadBytes caps reference uploads when no limit is configured.
const DefaultMaxUploadBytes = 5 << 20

const (
	pngContentType = "image/png"
	svgContentType = "image/svg+xml"
)

// CarouselHandler handles carousel generation HTTP requests.
type CarouselHandler struct {
	carouselService service.CarouselService
	maxUploadBytes  int64
}

// NewCarouselHandler creates a new CarouselHandler. A non-positive
// maxUploadBytes takes DefaultMaxUploadBytes.
func NewCarouselHandler(carouselService service.CarouselService, maxUploadBytes int64) *CarouselHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &CarouselHandler{
		carouselService: carouselService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// Analyze handles POST /api/analyze requests.
func (h *CarouselHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	form, ref, err := parseAnalyzeForm(w, r, h.maxUploadBytes)
	if err != nil {
		respondWithServiceError(w, r, err, GetSafeErrorMessage)
		return
	}

	result, err := h.carouselService.Analyze(r.Context(), service.AnalyzeInput{
		Theme:     form.BusinessTheme,
		Reference: ref,
	})
	if err != nil {
		respondWithServiceError(w, r, err, GetSafeErrorMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnalyzeResponse{
		MarketAnalysis:    result.MarketAnalysis,
		ReferenceAnalysis: result.ReferenceAnalysis,
	})
}

// GenerateStructure handles POST /api/generate/structure requests.
func (h *CarouselHandler) GenerateStructure(w http.ResponseWriter, r *http.Request) {
	var req StructureRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithServiceError(w, r, err, GetSafeErrorMessage)
		return
	}

	structure, err := h.carouselService.GenerateStructure(r.Context(), req.toGeneration())
	if err != nil {
		respondWithServiceError(w, r, err, GetSafeErrorMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, structure)
}

// RegenerateSlide handles POST /api/generate/regenerate-slide requests.
func (h *CarouselHandler) RegenerateSlide(w http.ResponseWriter, r *http.Request) {
	var req RegenerateSlideRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithServiceError(w, r, err, GetSafeErrorMessage)
		return
	}

	slide, err := h.carouselService.RegenerateSlide(r.Context(), service.RegenerateInput{
		SlideIndex: *req.SlideIndex,
		Current:    req.CurrentSlide.toDomain(),
		Context: domain.SlideContext{
			Topic:          req.Context.Topic,
			TargetAudience: req.Context.TargetAudience,
		},
	})
	if err != nil {
		respondWithServiceError(w, r, err, GetSafeErrorMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SlideResponse{Slide: slide})
}

// GenerateImages handles POST /api/generate/images requests. A missing
// visualMethod means template mode.
func (h *CarouselHandler) GenerateImages(w http.ResponseWriter, r *http.Request) {
	var req ImagesRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithServiceError(w, r, err, GetImageErrorMessage)
		return
	}

	method := domain.VisualMethod(strings.ToLower(strings.TrimSpace(req.VisualMethod)))
	if method == "" {
		method = domain.VisualMethodTemplate
	}

	batch, err := h.carouselService.GenerateImages(r.Context(), service.ImagesInput{
		Slides:       slidesToDomain(req.Slides),
		TemplateID:   req.TemplateID,
		VisualMethod: method,
		Topic:        req.Topic,
	})
	if err != nil {
		respondWithServiceError(w, r, err, GetImageErrorMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ImagesResponse{
		CarouselID: batch.ID,
		Slides:     batch.Slides,
	})
}

// Preview handles POST /api/generate/preview requests with the SVG scene of
// one slide.
func (h *CarouselHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithServiceError(w, r, err, GetSafeErrorMessage)
		return
	}

	svg := h.carouselService.PreviewSlide(req.Slide.toDomain(), req.TemplateID)
	shared.RespondWithBytes(w, r, http.StatusOK, svgContentType, svg)
}

// Download handles GET /api/images/download. A single-slide batch is sent
// as a PNG attachment; larger batches are listed by URL.
func (h *CarouselHandler) Download(w http.ResponseWriter, r *http.Request) {
	batchID := strings.TrimSpace(r.URL.Query().Get("carouselId"))
	if batchID == "" {
		err := domain.NewValidationError("carouselId", "is required", nil)
		respondWithServiceError(w, r, err, GetSafeErrorMessage)
		return
	}

	dl, err := h.carouselService.FetchBatch(r.Context(), batchID)
	if err != nil {
		respondWithServiceError(w, r, err, GetSafeErrorMessage)
		return
	}

	if dl.Single() {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.FileName))
		shared.RespondWithBytes(w, r, http.StatusOK, pngContentType, dl.Image)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DownloadResponse{
		CarouselID: dl.BatchID,
		Files:      dl.URLs,
	})
}

// ServeSlide handles GET {publicPath}/{batchID}/{file}. Stored slides never
// change, so they are cacheable indefinitely.
func (h *CarouselHandler) ServeSlide(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	name := chi.URLParam(r, "file")

	data, err := h.carouselService.OpenSlide(r.Context(), batchID, name)
	if err != nil {
		respondWithServiceError(w, r, err, GetSafeErrorMessage)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	shared.RespondWithBytes(w, r, http.StatusOK, pngContentType, data)
}

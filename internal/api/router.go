package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/carousel-api/internal/api/middleware"
	"github.com/phrazzld/carousel-api/internal/service"
)

// DefaultPublicPath is the URL prefix stored slides are served under.
const DefaultPublicPath = "/generated"

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	Service        service.CarouselService
	Logger         *slog.Logger
	PublicPath     string
	MaxUploadBytes int64
	AIEnabled      bool
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	publicPath := strings.TrimRight(cfg.PublicPath, "/")
	if publicPath == "" {
		publicPath = DefaultPublicPath
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(cfg.Logger))

	carouselHandler := NewCarouselHandler(cfg.Service, cfg.MaxUploadBytes)
	catalogHandler := NewCatalogHandler(cfg.AIEnabled)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", carouselHandler.Analyze)

		r.Route("/generate", func(r chi.Router) {
			r.Post("/structure", carouselHandler.GenerateStructure)
			r.Post("/regenerate-slide", carouselHandler.RegenerateSlide)
			r.Post("/images", carouselHandler.GenerateImages)
			r.Post("/preview", carouselHandler.Preview)
		})

		r.Get("/images/download", carouselHandler.Download)
		r.Get("/templates", catalogHandler.Templates)
		r.Get("/style-presets", catalogHandler.StylePresets)
	})

	r.Get(publicPath+"/{batchID}/{file}", carouselHandler.ServeSlide)
	r.Get("/health", catalogHandler.Health)

	return r
}

package main

import (
	"net/http"

	"github.com/phrazzld/carousel-api/internal/api"
	"github.com/phrazzld/carousel-api/internal/app"
)

// newRouter creates the HTTP router over the application's services.
func newRouter(application *app.Application) http.Handler {
	cfg := application.Config
	return api.NewRouter(api.RouterConfig{
		Service:        application.Service,
		Logger:         application.Logger,
		PublicPath:     cfg.Storage.PublicPath,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		AIEnabled:      application.Renderer.AIEnabled(),
	})
}

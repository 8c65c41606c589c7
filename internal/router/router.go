package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"foodchain-api/internal/handler"
	"foodchain-api/internal/middleware"
	"foodchain-api/pkg/apierror"
	"foodchain-api/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	RecognizeHandler *handler.RecognizeHandler
	CatalogHandler   *handler.CatalogHandler
	AdminHandler     *handler.AdminHandler
	StaticDir        string
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/ping", cfg.Handler.Ping)
		r.Get("/api/status", cfg.Handler.Status)
	}

	if cfg.RecognizeHandler != nil {
		r.Post("/api/recognize", cfg.RecognizeHandler.Recognize)
	}

	if cfg.CatalogHandler != nil {
		r.Post("/api/items", cfg.CatalogHandler.CreateItem)
		r.Get("/api/items", cfg.CatalogHandler.ListItems)
		r.Get("/api/items/nearby", cfg.CatalogHandler.ListItems)
		r.Post("/api/offers", cfg.CatalogHandler.CreateOffer)
		r.Get("/api/offers", cfg.CatalogHandler.ListOffers)
	}

	if cfg.AdminHandler != nil {
		r.Get("/api/admin/stats", cfg.AdminHandler.GetStats)
	}

	// Client build is served for all unmatched paths (SPA fallback).
	if cfg.StaticDir != "" {
		r.NotFound(spaHandler(cfg.StaticDir))
	}

	return r
}

// spaHandler serves files from dir, falling back to index.html for
// paths that do not exist so client-side routing keeps working.
func spaHandler(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))

	return func(w http.ResponseWriter, r *http.Request) {
		// Unknown API paths stay JSON errors, never the SPA shell.
		if strings.HasPrefix(r.URL.Path, "/api/") {
			response.Error(w, apierror.NotFound("route not found"))
			return
		}

		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}

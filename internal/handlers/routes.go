package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Static files (served from embedded filesystem)
	r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))

	// Configurator page
	r.Get("/", h.handleIndex)

	// WebSocket
	r.Get("/ws", h.Hub.ServeWs)

	// Configurator API (public)
	r.Get("/api/catalog", h.handleGetCatalog)
	r.Get("/api/configuration", h.handleDecodeConfiguration)
	r.Post("/api/configuration/state", h.handleConfigurationState)
	r.Post("/api/configuration/select", h.handleSelect)
	r.Post("/api/share-link", h.handleBuildShareLink)
	r.Get("/api/share-link/qr", h.handleShareLinkQR)
	r.Post("/api/cart", h.handleSubmitCart)

	// Auth routes (public)
	r.Get("/admin/login", h.handleLoginPage)
	r.Post("/admin/login", h.handleLogin)
	r.Post("/admin/logout", h.handleLogout)

	// Admin API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuthAPI)
		r.Get("/api/admin/export", h.handleExportCSV)
	})

	return r
}

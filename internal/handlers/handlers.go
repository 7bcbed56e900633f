package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/kitforge/kitforge/internal/auth"
	"github.com/kitforge/kitforge/internal/services"
	"github.com/kitforge/kitforge/internal/websocket"
)

// NewStaticServer creates a static file server from an fs.FS
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// Templates holds all parsed HTML templates
type Templates struct {
	Index      *template.Template
	AdminLogin *template.Template
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Configurator services.ConfiguratorServicer
	Cart         services.CartServicer
	ShareLink    services.ShareLinkServicer
	Export       services.ExportServicer
	Auth         *auth.Auth
	Hub          *websocket.Hub
	Log          HTTPLogger
	templates    *Templates
	staticServer http.Handler
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	configurator services.ConfiguratorServicer,
	cart services.CartServicer,
	shareLink services.ShareLinkServicer,
	export services.ExportServicer,
	templatesFS fs.FS,
	staticServer http.Handler,
	adminAuth *auth.Auth,
	hub *websocket.Hub,
	log HTTPLogger,
) (*Handlers, error) {
	templates, err := loadTemplates(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Handlers{
		Configurator: configurator,
		Cart:         cart,
		ShareLink:    shareLink,
		Export:       export,
		Auth:         adminAuth,
		Hub:          hub,
		Log:          log,
		templates:    templates,
		staticServer: staticServer,
	}, nil
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance without templates (for testing API endpoints)
func NewForTesting(
	configurator services.ConfiguratorServicer,
	cart services.CartServicer,
	shareLink services.ShareLinkServicer,
	export services.ExportServicer,
) *Handlers {
	testAuth := auth.New("test-password")
	return &Handlers{
		Configurator: configurator,
		Cart:         cart,
		ShareLink:    shareLink,
		Export:       export,
		Auth:         testAuth,
		Log:          NoopHTTPLogger{},
		// templates left nil - API endpoints don't use templates
	}
}

// loadTemplates parses all templates once at startup
func loadTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{}
	var err error

	if t.Index, err = template.ParseFS(templatesFS, "index.html"); err != nil {
		return nil, fmt.Errorf("index template: %w", err)
	}
	if t.AdminLogin, err = template.ParseFS(templatesFS, "admin/login.html"); err != nil {
		return nil, fmt.Errorf("admin login template: %w", err)
	}

	return t, nil
}

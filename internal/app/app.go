package app

import (
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kitforge/kitforge/internal/auth"
	"github.com/kitforge/kitforge/internal/catalog"
	"github.com/kitforge/kitforge/internal/handlers"
	"github.com/kitforge/kitforge/internal/logger"
	"github.com/kitforge/kitforge/internal/services"
	"github.com/kitforge/kitforge/internal/websocket"
	"github.com/kitforge/kitforge/pkg/bigcommerce"
)

// App holds all application dependencies
type App struct {
	log      logger.Logger
	handlers *handlers.Handlers
	demo     bool
}

// New creates and initializes a new application instance. demo should be
// true when BigCommerce credentials are not configured.
func New(log logger.Logger, cat *catalog.Catalog, bcClient bigcommerce.Client, demo bool, templatesFS, staticFS fs.FS, adminAuth *auth.Auth) (*App, error) {
	// Initialize services
	configuratorService := services.NewConfiguratorService(log, cat)
	cartService := services.NewCartService(log, cat, bcClient, demo)
	shareLinkService := services.NewShareLinkService(log)
	exportService := services.NewExportService(log, cat)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, cat)
	hub.Start()

	// Create static file server
	staticServer := handlers.NewStaticServer(staticFS)

	h, err := handlers.New(
		configuratorService,
		cartService,
		shareLinkService,
		exportService,
		templatesFS,
		staticServer,
		adminAuth,
		hub,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		log:      log,
		handlers: h,
		demo:     demo,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	// Advertise a LAN-reachable URL so share links and QR codes scanned
	// from another device on the network resolve.
	ip := getPreferredIP(realNetworkProvider{})
	baseURL := fmt.Sprintf("http://%s%s", ip, addr)

	a.log.Info("Server starting", "url", baseURL, "demo_mode", a.demo)
	a.log.Info("Admin login", "url", baseURL+"/admin/login")
	return http.ListenAndServe(addr, a.Router())
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider is an interface for getting network interfaces (for testing)
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the best IP address for LAN access.
// Prefers private network addresses (192.168.x.x, 10.x.x.x, 172.16-31.x.x).
// Falls back to localhost if no suitable address is found.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP

	for _, iface := range ifaces {
		// Skip down, loopback, and point-to-point interfaces
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			// Only consider IPv4 addresses
			if ip == nil || ip.To4() == nil {
				continue
			}

			// Skip loopback
			if ip.IsLoopback() {
				continue
			}

			candidates = append(candidates, ip)
		}
	}

	// Prefer private network addresses
	for _, ip := range candidates {
		ipStr := ip.String()
		if strings.HasPrefix(ipStr, "192.168.") ||
			strings.HasPrefix(ipStr, "10.") ||
			isPrivate172(ip) {
			return ipStr
		}
	}

	// Fall back to any non-loopback if no private address found
	if len(candidates) > 0 {
		return candidates[0].String()
	}

	return "localhost"
}

// isPrivate172 checks if IP is in 172.16.0.0/12 range
func isPrivate172(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		return ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31
	}
	return false
}

package app

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/kitforge/kitforge/internal/auth"
	"github.com/kitforge/kitforge/internal/catalog"
	"github.com/kitforge/kitforge/internal/logger"
	"github.com/kitforge/kitforge/pkg/bigcommerce"
)

func createTestTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html": &fstest.MapFile{
			Data: []byte(`<html><body>Configurator {{if .Demo}}demo{{end}}</body></html>`),
		},
		"admin/login.html": &fstest.MapFile{
			Data: []byte(`<html><body>Login</body></html>`),
		},
	}
}

func createTestApp(t *testing.T) *App {
	t.Helper()

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	a, err := New(
		logger.New(),
		cat,
		bigcommerce.NewMockClient(),
		true,
		createTestTemplatesFS(),
		fstest.MapFS{},
		auth.New("test-password"),
	)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	return a
}

func TestNew_InitializesApp(t *testing.T) {
	a := createTestApp(t)

	if a.handlers == nil {
		t.Error("expected handlers to be initialized")
	}
	if !a.demo {
		t.Error("expected demo flag to be carried")
	}
}

func TestNew_FailsWithMissingTemplates(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	_, err = New(
		logger.New(),
		cat,
		bigcommerce.NewMockClient(),
		true,
		fstest.MapFS{},
		fstest.MapFS{},
		auth.New("test-password"),
	)
	if err == nil {
		t.Error("expected error for missing templates")
	}
}

func TestApp_Router_ServesRequests(t *testing.T) {
	a := createTestApp(t)
	server := httptest.NewServer(a.Router())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/catalog")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for /api/catalog, got %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for /, got %d", resp.StatusCode)
	}
}

// fakeInterface implements networkInterface for getPreferredIP tests
type fakeInterface struct {
	flags net.Flags
	addrs []net.Addr
}

func (f fakeInterface) Flags() net.Flags          { return f.flags }
func (f fakeInterface) Addrs() ([]net.Addr, error) { return f.addrs, nil }

type fakeProvider struct {
	ifaces []networkInterface
	err    error
}

func (f fakeProvider) Interfaces() ([]networkInterface, error) {
	return f.ifaces, f.err
}

func ipNet(ip string) *net.IPNet {
	return &net.IPNet{IP: net.ParseIP(ip), Mask: net.CIDRMask(24, 32)}
}

func TestGetPreferredIP_ProviderError(t *testing.T) {
	if ip := getPreferredIP(fakeProvider{err: fmt.Errorf("no interfaces")}); ip != "localhost" {
		t.Errorf("expected localhost, got %q", ip)
	}
}

func TestGetPreferredIP_NoCandidates(t *testing.T) {
	if ip := getPreferredIP(fakeProvider{}); ip != "localhost" {
		t.Errorf("expected localhost, got %q", ip)
	}
}

func TestGetPreferredIP_PrefersPrivateAddress(t *testing.T) {
	provider := fakeProvider{ifaces: []networkInterface{
		fakeInterface{flags: net.FlagUp, addrs: []net.Addr{ipNet("203.0.113.9")}},
		fakeInterface{flags: net.FlagUp, addrs: []net.Addr{ipNet("192.168.1.5")}},
	}}

	if ip := getPreferredIP(provider); ip != "192.168.1.5" {
		t.Errorf("expected private address, got %q", ip)
	}
}

func TestGetPreferredIP_Private172Range(t *testing.T) {
	provider := fakeProvider{ifaces: []networkInterface{
		fakeInterface{flags: net.FlagUp, addrs: []net.Addr{ipNet("203.0.113.9")}},
		fakeInterface{flags: net.FlagUp, addrs: []net.Addr{ipNet("172.20.0.3")}},
	}}

	if ip := getPreferredIP(provider); ip != "172.20.0.3" {
		t.Errorf("expected 172.20.0.3, got %q", ip)
	}
}

func TestGetPreferredIP_FallsBackToPublic(t *testing.T) {
	provider := fakeProvider{ifaces: []networkInterface{
		fakeInterface{flags: net.FlagUp, addrs: []net.Addr{ipNet("203.0.113.9")}},
	}}

	if ip := getPreferredIP(provider); ip != "203.0.113.9" {
		t.Errorf("expected public fallback, got %q", ip)
	}
}

func TestGetPreferredIP_SkipsDownAndLoopback(t *testing.T) {
	provider := fakeProvider{ifaces: []networkInterface{
		fakeInterface{flags: 0, addrs: []net.Addr{ipNet("192.168.1.5")}},
		fakeInterface{flags: net.FlagUp | net.FlagLoopback, addrs: []net.Addr{ipNet("127.0.0.1")}},
	}}

	if ip := getPreferredIP(provider); ip != "localhost" {
		t.Errorf("expected localhost, got %q", ip)
	}
}

func TestIsPrivate172(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"172.15.0.1", false},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"172.32.0.1", false},
		{"192.168.1.1", false},
	}

	for _, tt := range tests {
		if got := isPrivate172(net.ParseIP(tt.ip)); got != tt.expected {
			t.Errorf("isPrivate172(%s) = %v, expected %v", tt.ip, got, tt.expected)
		}
	}
}

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kitforge/kitforge/internal/catalog"
	"github.com/kitforge/kitforge/internal/logger"
	"github.com/kitforge/kitforge/internal/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return c
}

func TestNew_CreatesHubWithDependencies(t *testing.T) {
	hub := New(logger.New(), testCatalog(t))

	if hub == nil {
		t.Fatal("expected hub to be created")
	}
	if hub.log == nil {
		t.Error("expected logger to be set")
	}
	if hub.cat == nil {
		t.Error("expected catalog to be set")
	}
	if hub.clients == nil {
		t.Error("expected clients map to be initialized")
	}
	if hub.broadcast == nil {
		t.Error("expected broadcast channel to be initialized")
	}
	if hub.register == nil {
		t.Error("expected register channel to be initialized")
	}
	if hub.unregister == nil {
		t.Error("expected unregister channel to be initialized")
	}
}

func TestHub_BroadcastWithNoClients(t *testing.T) {
	hub := New(logger.New(), testCatalog(t))
	hub.Start()

	time.Sleep(10 * time.Millisecond)

	// Broadcasting with no clients must not block
	done := make(chan bool)
	go func() {
		hub.BroadcastCartSubmitted("demo-cart-1", 119.98, 2)
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("broadcast blocked with no clients")
	}
}

// dial connects a websocket client to the hub through a test server
func dial(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) models.WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg models.WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return msg
}

func TestHub_GreetsNewClientWithCatalogInfo(t *testing.T) {
	cat := testCatalog(t)
	hub := New(logger.New(), cat)
	hub.Start()

	conn := dial(t, hub)

	msg := readMessage(t, conn)
	if msg.Type != "catalog_info" {
		t.Fatalf("expected catalog_info greeting, got %q", msg.Type)
	}

	payload, ok := msg.Payload.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected payload: %v", msg.Payload)
	}
	if int(payload["steps"].(float64)) != len(cat.Steps) {
		t.Errorf("expected %d steps, got %v", len(cat.Steps), payload["steps"])
	}
	if int(payload["options"].(float64)) != cat.OptionCount() {
		t.Errorf("expected %d options, got %v", cat.OptionCount(), payload["options"])
	}
}

func TestHub_BroadcastCartSubmittedReachesClient(t *testing.T) {
	hub := New(logger.New(), testCatalog(t))
	hub.Start()

	conn := dial(t, hub)

	// The greeting confirms registration completed
	if msg := readMessage(t, conn); msg.Type != "catalog_info" {
		t.Fatalf("expected greeting first, got %q", msg.Type)
	}

	hub.BroadcastCartSubmitted("demo-cart-42", 119.98, 2)

	msg := readMessage(t, conn)
	if msg.Type != "cart_submitted" {
		t.Fatalf("expected cart_submitted, got %q", msg.Type)
	}

	payload, ok := msg.Payload.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected payload: %v", msg.Payload)
	}
	if payload["cart_id"] != "demo-cart-42" {
		t.Errorf("unexpected cart_id: %v", payload["cart_id"])
	}
	if payload["total_price"].(float64) != 119.98 {
		t.Errorf("unexpected total: %v", payload["total_price"])
	}
	if int(payload["items"].(float64)) != 2 {
		t.Errorf("unexpected item count: %v", payload["items"])
	}
}

func TestHub_MultipleClientsReceiveBroadcast(t *testing.T) {
	hub := New(logger.New(), testCatalog(t))
	hub.Start()

	first := dial(t, hub)
	second := dial(t, hub)
	readMessage(t, first)
	readMessage(t, second)

	hub.BroadcastCartSubmitted("demo-cart-7", 89.99, 1)

	for _, conn := range []*websocket.Conn{first, second} {
		if msg := readMessage(t, conn); msg.Type != "cart_submitted" {
			t.Errorf("expected cart_submitted, got %q", msg.Type)
		}
	}
}

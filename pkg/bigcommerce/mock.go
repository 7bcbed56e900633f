package bigcommerce

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a mock BigCommerce client for testing
type MockClient struct {
	mu                 sync.Mutex
	cart               *Cart
	products           map[string]*Product
	createCartErr      error
	findProductErr     error
	updateInventoryErr error
	baseURL            string

	createdCarts    []CreateCartRequest
	inventoryLevels map[int64]int
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithCart sets the cart returned by CreateCart
func WithCart(cart *Cart) MockOption {
	return func(m *MockClient) {
		m.cart = cart
	}
}

// WithCreateCartError sets an error to return from CreateCart
func WithCreateCartError(err error) MockOption {
	return func(m *MockClient) {
		m.createCartErr = err
	}
}

// WithProduct registers a product to be found by SKU
func WithProduct(p Product) MockOption {
	return func(m *MockClient) {
		m.products[p.SKU] = &p
	}
}

// WithFindProductError sets an error to return from FindProductBySKU
func WithFindProductError(err error) MockOption {
	return func(m *MockClient) {
		m.findProductErr = err
	}
}

// WithUpdateInventoryError sets an error to return from UpdateInventory
func WithUpdateInventoryError(err error) MockOption {
	return func(m *MockClient) {
		m.updateInventoryErr = err
	}
}

// WithMockBaseURL sets the base URL
func WithMockBaseURL(url string) MockOption {
	return func(m *MockClient) {
		m.baseURL = url
	}
}

// NewMockClient creates a new mock BigCommerce client
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		products:        make(map[string]*Product),
		inventoryLevels: make(map[int64]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateCart records the request and returns the configured cart
func (m *MockClient) CreateCart(ctx context.Context, req CreateCartRequest) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createCartErr != nil {
		return nil, m.createCartErr
	}
	m.createdCarts = append(m.createdCarts, req)
	if m.cart != nil {
		return m.cart, nil
	}

	total := 0.0
	for _, item := range req.LineItems {
		total += item.ListPrice * float64(item.Quantity)
	}
	return &Cart{ID: "mock-cart-1", CartAmount: total, LineItems: req.LineItems}, nil
}

// CreatedCarts returns every request passed to CreateCart
func (m *MockClient) CreatedCarts() []CreateCartRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CreateCartRequest(nil), m.createdCarts...)
}

// FindProductBySKU returns a registered product or an error
func (m *MockClient) FindProductBySKU(ctx context.Context, sku string) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findProductErr != nil {
		return nil, m.findProductErr
	}
	p, ok := m.products[sku]
	if !ok {
		return nil, fmt.Errorf("product not found with SKU %q", sku)
	}
	return p, nil
}

// UpdateInventory records the new inventory level for a product
func (m *MockClient) UpdateInventory(ctx context.Context, productID int64, level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateInventoryErr != nil {
		return m.updateInventoryErr
	}
	m.inventoryLevels[productID] = level
	return nil
}

// InventoryLevel returns the last level recorded for a product
func (m *MockClient) InventoryLevel(productID int64) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	level, ok := m.inventoryLevels[productID]
	return level, ok
}

// SetCredentials is a no-op for the mock
func (m *MockClient) SetCredentials(storeHash, accessToken string) {}

// BaseURL returns the configured base URL
func (m *MockClient) BaseURL() string {
	return m.baseURL
}

// SetBaseURL sets the base URL
func (m *MockClient) SetBaseURL(url string) {
	m.baseURL = url
}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)

// Package bigcommerce provides a client for the BigCommerce v3 store API.
package bigcommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kitforge/kitforge/internal/logger"
)

// CartLineItem is one row of a cart creation request: an ordered
// product/variant pair with quantity 1 per configured component.
type CartLineItem struct {
	ProductID int64   `json:"product_id"`
	VariantID int64   `json:"variant_id,omitempty"`
	Quantity  int     `json:"quantity"`
	SKU       string  `json:"sku,omitempty"`
	ListPrice float64 `json:"list_price"`
}

// CreateCartRequest is the payload for the cart creation call
type CreateCartRequest struct {
	LineItems  []CartLineItem `json:"line_items"`
	CustomerID int64          `json:"customer_id,omitempty"`
}

// Cart is the receipt for a created cart
type Cart struct {
	ID         string         `json:"id"`
	CartAmount float64        `json:"cart_amount"`
	LineItems  []CartLineItem `json:"line_items,omitempty"`
}

// cartEnvelope wraps the cart in BigCommerce's data envelope
type cartEnvelope struct {
	Data Cart `json:"data"`
}

// Product is a catalog product looked up by SKU
type Product struct {
	ID             int64  `json:"id"`
	SKU            string `json:"sku"`
	InventoryLevel int    `json:"inventory_level"`
}

// productListEnvelope wraps product search results
type productListEnvelope struct {
	Data []Product `json:"data"`
}

// Client defines the interface for BigCommerce operations
type Client interface {
	// CreateCart creates a cart carrying the given line items
	CreateCart(ctx context.Context, req CreateCartRequest) (*Cart, error)
	// FindProductBySKU looks a catalog product up by its SKU
	FindProductBySKU(ctx context.Context, sku string) (*Product, error)
	// UpdateInventory sets the absolute inventory level of a product
	UpdateInventory(ctx context.Context, productID int64, level int) error
	// SetCredentials configures the store hash and access token
	SetCredentials(storeHash, accessToken string)
	// BaseURL returns the configured API base URL
	BaseURL() string
	// SetBaseURL overrides the API base URL (used in tests)
	SetBaseURL(url string)
}

// HTTPClient is a real HTTP client for the BigCommerce v3 API
type HTTPClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         logger.Logger
}

// NewHTTPClient creates a client for the given store. An empty store hash
// leaves the base URL empty; callers are expected to stay in demo mode in
// that case and never issue requests.
func NewHTTPClient(storeHash, accessToken string, log logger.Logger) *HTTPClient {
	c := &HTTPClient{
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		log:         log,
	}
	if storeHash != "" {
		c.baseURL = fmt.Sprintf("https://api.bigcommerce.com/stores/%s/v3", storeHash)
	}
	return c
}

// NewHTTPClientWithHTTPClient creates a client with a custom http.Client
func NewHTTPClientWithHTTPClient(baseURL, accessToken string, httpClient *http.Client, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  httpClient,
		log:         log,
	}
}

// BaseURL returns the configured API base URL
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// SetBaseURL overrides the API base URL
func (c *HTTPClient) SetBaseURL(url string) {
	c.baseURL = url
}

// SetCredentials configures the store hash and access token
func (c *HTTPClient) SetCredentials(storeHash, accessToken string) {
	c.baseURL = fmt.Sprintf("https://api.bigcommerce.com/stores/%s/v3", storeHash)
	c.accessToken = accessToken
}

// doRequest executes one authenticated JSON request and decodes the
// response into out. Any non-2xx status is surfaced as a generic API
// error carrying the backend's status text; there are no retries.
func (c *HTTPClient) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	reqURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
		c.log.Debug("BigCommerce request", "method", method, "url", reqURL, "body", string(encoded))
	} else {
		c.log.Debug("BigCommerce request", "method", method, "url", reqURL)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to BigCommerce: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("BigCommerce response", "status", resp.StatusCode, "body", string(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("BigCommerce API error: %s", resp.Status)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// CreateCart creates a cart carrying the given line items
func (c *HTTPClient) CreateCart(ctx context.Context, req CreateCartRequest) (*Cart, error) {
	var envelope cartEnvelope
	if err := c.doRequest(ctx, http.MethodPost, "/carts", req, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// FindProductBySKU looks a catalog product up by its SKU
func (c *HTTPClient) FindProductBySKU(ctx context.Context, sku string) (*Product, error) {
	path := "/catalog/products?sku=" + url.QueryEscape(sku)

	var envelope productListEnvelope
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Data) == 0 {
		return nil, fmt.Errorf("product not found with SKU %q", sku)
	}
	return &envelope.Data[0], nil
}

// UpdateInventory sets the absolute inventory level of a product
func (c *HTTPClient) UpdateInventory(ctx context.Context, productID int64, level int) error {
	path := fmt.Sprintf("/catalog/products/%d/inventory", productID)
	body := map[string]int{"inventory_level": level}
	return c.doRequest(ctx, http.MethodPut, path, body, nil)
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

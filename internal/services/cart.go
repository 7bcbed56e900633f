package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/kitforge/kitforge/internal/catalog"
	"github.com/kitforge/kitforge/internal/errors"
	"github.com/kitforge/kitforge/internal/logger"
	"github.com/kitforge/kitforge/internal/models"
	"github.com/kitforge/kitforge/pkg/bigcommerce"
)

// CartService handles cart submission. Without store credentials it runs
// in demo mode, synthesizing receipts instead of issuing network calls.
type CartService struct {
	log    logger.Logger
	cat    *catalog.Catalog
	client bigcommerce.Client
	demo   bool
}

// NewCartService creates a new CartService. demo should be true when
// BigCommerce credentials are not configured.
func NewCartService(log logger.Logger, cat *catalog.Catalog, client bigcommerce.Client, demo bool) *CartService {
	return &CartService{log: log, cat: cat, client: client, demo: demo}
}

// DemoMode reports whether submissions are simulated
func (s *CartService) DemoMode() bool {
	return s.demo
}

// Submit builds the line-item payload for the current selections and
// creates a cart. An empty configuration is rejected before any network
// I/O. Backend failures are returned as-is for the caller to surface;
// there is no retry.
func (s *CartService) Submit(ctx context.Context, sel models.Selections, customerID int64) (*bigcommerce.Cart, error) {
	items := s.cat.LineItems(sel)
	if len(items) == 0 {
		return nil, ErrEmptyConfiguration
	}

	lineItems := make([]bigcommerce.CartLineItem, 0, len(items))
	total := 0.0
	for _, item := range items {
		lineItems = append(lineItems, bigcommerce.CartLineItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  1,
			SKU:       item.SKU,
			ListPrice: item.Price,
		})
		total += item.Price
	}

	if s.demo {
		cart := &bigcommerce.Cart{
			ID:         "demo-cart-" + uuid.NewString(),
			CartAmount: total,
			LineItems:  lineItems,
		}
		s.log.Info("Demo mode: simulated cart creation", "cart_id", cart.ID, "items", len(lineItems), "total", total)
		return cart, nil
	}

	cart, err := s.client.CreateCart(ctx, bigcommerce.CreateCartRequest{
		LineItems:  lineItems,
		CustomerID: customerID,
	})
	if err != nil {
		s.log.Error("Cart creation failed", "error", err)
		return nil, errors.Upstream(err, "cart creation failed")
	}

	s.log.Info("Cart created", "cart_id", cart.ID, "items", len(lineItems), "total", total)
	return cart, nil
}

// ProcessOrder adjusts inventory for every SKU in the configuration:
// look the product up by SKU, then write back the decremented level.
// This is a placeholder update, not reconciliation; the first failure
// aborts the pass.
func (s *CartService) ProcessOrder(ctx context.Context, sel models.Selections) error {
	for _, item := range s.cat.LineItems(sel) {
		if s.demo {
			s.log.Info("Demo mode: simulated inventory update", "sku", item.SKU)
			continue
		}

		product, err := s.client.FindProductBySKU(ctx, item.SKU)
		if err != nil {
			return errors.Upstream(err, "inventory lookup failed for SKU "+item.SKU)
		}
		if err := s.client.UpdateInventory(ctx, product.ID, product.InventoryLevel-1); err != nil {
			return errors.Upstream(err, "inventory update failed for SKU "+item.SKU)
		}
		s.log.Debug("Inventory updated", "sku", item.SKU, "product_id", product.ID, "level", product.InventoryLevel-1)
	}
	return nil
}

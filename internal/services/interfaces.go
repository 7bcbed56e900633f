package services

import (
	"context"
	"io"

	"github.com/kitforge/kitforge/internal/catalog"
	"github.com/kitforge/kitforge/internal/models"
	"github.com/kitforge/kitforge/pkg/bigcommerce"
)

// ConfiguratorServicer defines the configurator service interface
type ConfiguratorServicer interface {
	Catalog() *catalog.Catalog
	ApplySelection(sel models.Selections, stepID, optionID string) (models.Selections, error)
	State(sel models.Selections) *ConfigurationState
}

// CartServicer defines the cart submission service interface
type CartServicer interface {
	Submit(ctx context.Context, sel models.Selections, customerID int64) (*bigcommerce.Cart, error)
	ProcessOrder(ctx context.Context, sel models.Selections) error
	DemoMode() bool
}

// ShareLinkServicer defines the share-link codec service interface
type ShareLinkServicer interface {
	Encode(sel models.Selections) string
	Decode(raw string) models.Selections
	BuildURL(loc Location, sel models.Selections) string
	QRCode(loc Location, sel models.Selections) ([]byte, error)
}

// ExportServicer defines the catalog export service interface
type ExportServicer interface {
	WriteCSV(w io.Writer) error
}

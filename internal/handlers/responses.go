package handlers

import (
	"github.com/kitforge/kitforge/internal/models"
	"github.com/kitforge/kitforge/internal/services"
	"github.com/kitforge/kitforge/pkg/bigcommerce"
)

// SelectResponse is the new selection map plus its derived state
type SelectResponse struct {
	Selections models.Selections            `json:"selections"`
	State      *services.ConfigurationState `json:"state"`
}

// ConfigurationResponse is a decoded share-link payload. Selections is
// empty (never an error) when the payload was absent or malformed.
type ConfigurationResponse struct {
	Selections models.Selections            `json:"selections"`
	State      *services.ConfigurationState `json:"state"`
}

// ShareLinkResponse carries the composed share URL
type ShareLinkResponse struct {
	URL string `json:"url"`
}

// CartSubmitResponse is the receipt for a submitted configuration
type CartSubmitResponse struct {
	Cart     *bigcommerce.Cart `json:"cart"`
	ShareURL string            `json:"share_url"`
	Demo     bool              `json:"demo"`
}

package handlers

import (
	"github.com/kitforge/kitforge/internal/models"
)

// SelectRequest applies one selection to a client-held selection map
type SelectRequest struct {
	Selections models.Selections `json:"selections"`
	StepID     string            `json:"step_id"`
	OptionID   string            `json:"option_id"`
}

// StateRequest recomputes derived state for a selection map
type StateRequest struct {
	Selections models.Selections `json:"selections"`
}

// ShareLinkRequest builds a share URL for a selection map
type ShareLinkRequest struct {
	Selections models.Selections `json:"selections"`
}

// CartSubmitRequest submits a configuration to the cart backend
type CartSubmitRequest struct {
	Selections models.Selections `json:"selections"`
	CustomerID int64             `json:"customer_id,omitempty"`
}

// LoginRequest carries the admin password
type LoginRequest struct {
	Password string `json:"password"`
}

package handlers

import (
	"net/http"

	"github.com/kitforge/kitforge/internal/services"
)

// handleIndex serves the configurator page
func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.templates.Index.Execute(w, map[string]bool{
		"Demo": h.Cart.DemoMode(),
	})
}

// handleGetCatalog returns the active catalog document
func (h *Handlers) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Configurator.Catalog())
}

// handleDecodeConfiguration decodes a share-link payload. A missing or
// malformed payload yields an empty configuration with 200, never an
// error; a broken link must not block the configurator.
func (h *Handlers) handleDecodeConfiguration(w http.ResponseWriter, r *http.Request) {
	sel := h.ShareLink.Decode(r.URL.Query().Get("config"))

	respondOK(w, ConfigurationResponse{
		Selections: sel,
		State:      h.Configurator.State(sel),
	})
}

// handleConfigurationState recomputes derived state for a selection map
func (h *Handlers) handleConfigurationState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, ConfigurationResponse{
		Selections: req.Selections,
		State:      h.Configurator.State(req.Selections),
	})
}

// handleSelect applies one selection and returns the new map with its
// derived state
func (h *Handlers) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.StepID == "" || req.OptionID == "" {
		respondError(w, BadRequest("step_id and option_id are required"))
		return
	}

	next, err := h.Configurator.ApplySelection(req.Selections, req.StepID, req.OptionID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, SelectResponse{
		Selections: next,
		State:      h.Configurator.State(next),
	})
}

// handleBuildShareLink composes a share URL for the requesting host
func (h *Handlers) handleBuildShareLink(w http.ResponseWriter, r *http.Request) {
	var req ShareLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, ShareLinkResponse{
		URL: h.ShareLink.BuildURL(requestLocation(r), req.Selections),
	})
}

// handleShareLinkQR renders the share URL as a PNG QR code
func (h *Handlers) handleShareLinkQR(w http.ResponseWriter, r *http.Request) {
	sel := h.ShareLink.Decode(r.URL.Query().Get("config"))

	png, err := h.ShareLink.QRCode(requestLocation(r), sel)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// handleSubmitCart submits a configuration to the cart backend. On
// success the share URL for the submitted configuration is returned
// alongside the receipt and the submission is announced on the hub.
func (h *Handlers) handleSubmitCart(w http.ResponseWriter, r *http.Request) {
	var req CartSubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	cart, err := h.Cart.Submit(r.Context(), req.Selections, req.CustomerID)
	if err != nil {
		respondError(w, err)
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastCartSubmitted(cart.ID, cart.CartAmount, len(cart.LineItems))
	}

	respondOK(w, CartSubmitResponse{
		Cart:     cart,
		ShareURL: h.ShareLink.BuildURL(requestLocation(r), req.Selections),
		Demo:     h.Cart.DemoMode(),
	})
}

// requestLocation derives the share-link location from the request,
// honoring a forwarding proxy's protocol header.
func requestLocation(r *http.Request) services.Location {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}
	return services.Location{
		Origin: scheme + "://" + r.Host,
		Path:   "/",
	}
}

package services

import (
	"encoding/base64"
	"encoding/json"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/kitforge/kitforge/internal/logger"
	"github.com/kitforge/kitforge/internal/models"
)

// Location is the page a share link points back to. It is passed in
// explicitly so the codec never touches ambient request state.
type Location struct {
	Origin string // scheme://host
	Path   string
}

// ShareLinkService serializes selection maps to and from the URL-safe
// `config` query parameter.
type ShareLinkService struct {
	log logger.Logger
}

// NewShareLinkService creates a new ShareLinkService
func NewShareLinkService(log logger.Logger) *ShareLinkService {
	return &ShareLinkService{log: log}
}

// Encode serializes a selection map to an unpadded URL-safe base64 string
func (s *ShareLinkService) Encode(sel models.Selections) string {
	if sel == nil {
		sel = models.Selections{}
	}
	data, err := json.Marshal(sel)
	if err != nil {
		// A Selections map always marshals; keep the codec total anyway.
		s.log.Error("Failed to encode selections", "error", err)
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode reverses Encode. It also accepts standard-alphabet base64, which
// the legacy storefront produced. Any failure — empty input, bad base64,
// bad JSON — yields nil ("no prior configuration"); decode errors never
// reach the caller.
func (s *ShareLinkService) Decode(raw string) models.Selections {
	if raw == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		if data, err = base64.StdEncoding.DecodeString(raw); err != nil {
			s.log.Debug("Share link is not valid base64", "error", err)
			return nil
		}
	}

	var sel models.Selections
	if err := json.Unmarshal(data, &sel); err != nil {
		s.log.Debug("Share link payload is not valid JSON", "error", err)
		return nil
	}
	return sel
}

// BuildURL composes an absolute share URL for the given page location
func (s *ShareLinkService) BuildURL(loc Location, sel models.Selections) string {
	path := loc.Path
	if path == "" {
		path = "/"
	}
	return loc.Origin + path + "?config=" + s.Encode(sel)
}

// QRCode renders the share URL as a 256px PNG
func (s *ShareLinkService) QRCode(loc Location, sel models.Selections) ([]byte, error) {
	return qrcode.Encode(s.BuildURL(loc, sel), qrcode.Medium, 256)
}

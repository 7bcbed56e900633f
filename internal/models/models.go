package models

import (
	"encoding/json"
	"fmt"
)

// Selection holds the choice a shopper made for one step: a single option
// ID for single-choice steps, an ordered duplicate-free list of option IDs
// for accessory steps. The JSON form matches the share-link wire format:
// a bare string for single steps, an array for accessory steps.
type Selection struct {
	Option  string
	Options []string
	Multi   bool
}

// Single returns a single-choice selection.
func Single(optionID string) Selection {
	return Selection{Option: optionID}
}

// Multiple returns a multi-choice selection preserving the given order.
func Multiple(optionIDs ...string) Selection {
	return Selection{Options: optionIDs, Multi: true}
}

// IDs returns every selected option ID in selection order.
func (s Selection) IDs() []string {
	if s.Multi {
		return s.Options
	}
	if s.Option == "" {
		return nil
	}
	return []string{s.Option}
}

// Has reports whether optionID is part of the selection.
func (s Selection) Has(optionID string) bool {
	for _, id := range s.IDs() {
		if id == optionID {
			return true
		}
	}
	return false
}

// Empty reports whether the selection carries no option. An empty
// multi-selection is equivalent to the step being absent from the map.
func (s Selection) Empty() bool {
	return len(s.IDs()) == 0
}

// MarshalJSON emits a bare string for single selections and an array for
// multi selections, matching the legacy share-link payloads.
func (s Selection) MarshalJSON() ([]byte, error) {
	if s.Multi {
		ids := s.Options
		if ids == nil {
			ids = []string{}
		}
		return json.Marshal(ids)
	}
	return json.Marshal(s.Option)
}

// UnmarshalJSON accepts either a string or an array of strings.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = Selection{Option: single}
		return nil
	}

	var multi []string
	if err := json.Unmarshal(data, &multi); err == nil {
		*s = Selection{Options: multi, Multi: true}
		return nil
	}

	return fmt.Errorf("selection: cannot unmarshal %s", string(data))
}

// Selections maps a step ID to the choice made for that step. It is the
// only piece of configurator runtime state, and it is treated as an
// immutable value: every mutation goes through catalog.Apply, which
// returns a fresh map.
type Selections map[string]Selection

// Clone returns a deep copy, so a mutation never aliases the original.
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for stepID, sel := range s {
		if sel.Multi {
			ids := make([]string, len(sel.Options))
			copy(ids, sel.Options)
			sel.Options = ids
		}
		out[stepID] = sel
	}
	return out
}

// Equal reports structural equality. Steps holding an empty selection
// compare equal to steps absent from the map, and multi-selections are
// compared as sets.
func (s Selections) Equal(other Selections) bool {
	return covered(s, other) && covered(other, s)
}

func covered(a, b Selections) bool {
	for stepID, sel := range a {
		if sel.Empty() {
			continue
		}
		got, ok := b[stepID]
		if !ok || got.Multi != sel.Multi {
			return false
		}
		if len(got.IDs()) != len(sel.IDs()) {
			return false
		}
		for _, id := range sel.IDs() {
			if !got.Has(id) {
				return false
			}
		}
	}
	return true
}

// LineItem is one selected option flattened into a priced, SKU-bearing
// row ready for summary rendering and cart submission.
type LineItem struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	SKU       string  `json:"sku"`
	ProductID int64   `json:"product_id,omitempty"`
	VariantID int64   `json:"variant_id,omitempty"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

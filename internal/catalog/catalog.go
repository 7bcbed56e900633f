// Package catalog holds the static product tree a configuration is built
// from, and the pure functions that resolve selections against it.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kitforge/kitforge/internal/errors"
)

// Step types
const (
	StepSingle      = "single"
	StepAccessories = "accessories"
)

// Option is one selectable catalog entry. Style options are full Options
// and share the same flat ID space as every other option.
type Option struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	SKU         string  `json:"sku"`
	Description string  `json:"description,omitempty"`
	ProductID   int64   `json:"product_id,omitempty"`
	VariantID   int64   `json:"variant_id,omitempty"`
	InventoryID int64   `json:"inventory_id,omitempty"`
}

// Category groups related accessory options. Styles maps an option ID to
// the dependent second-level choices that option unlocks.
type Category struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Options     []Option            `json:"options"`
	Styles      map[string][]Option `json:"styles,omitempty"`
}

// Step is one stage of the guided flow. Type selects the variant: single
// steps carry Options, accessories steps carry Categories.
type Step struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Type       string     `json:"type"`
	Options    []Option   `json:"options,omitempty"`
	Categories []Category `json:"categories,omitempty"`
}

// Catalog is the ordered sequence of steps. It is loaded once, validated,
// and never mutated at runtime.
type Catalog struct {
	Steps []Step `json:"steps"`
}

//go:embed data/catalog.json
var defaultCatalog []byte

// Default parses and validates the embedded catalog document.
func Default() (*Catalog, error) {
	return parse(defaultCatalog)
}

// Load reads and validates a catalog JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation, "malformed catalog document")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks catalog well-formedness. The source data is trusted but
// unvalidated, so every violation is a fail-fast startup error: a
// duplicate ID anywhere in the flat ID space would make first-match-wins
// resolution silently pick the wrong option.
func (c *Catalog) Validate() error {
	if len(c.Steps) == 0 {
		return errors.Validation("catalog has no steps")
	}

	seenSteps := make(map[string]bool)
	seenOptions := make(map[string]string) // option ID -> owning step ID

	record := func(stepID string, opt Option) error {
		if opt.ID == "" {
			return errors.Validationf("step %q: option with empty ID", stepID)
		}
		if opt.Price < 0 {
			return errors.Validationf("option %q: negative price %.2f", opt.ID, opt.Price)
		}
		if owner, dup := seenOptions[opt.ID]; dup {
			return errors.Validationf("duplicate option ID %q (steps %q and %q)", opt.ID, owner, stepID)
		}
		seenOptions[opt.ID] = stepID
		return nil
	}

	for _, step := range c.Steps {
		if step.ID == "" || step.Title == "" {
			return errors.Validationf("step with empty ID or title")
		}
		if seenSteps[step.ID] {
			return errors.Validationf("duplicate step ID %q", step.ID)
		}
		seenSteps[step.ID] = true

		switch step.Type {
		case StepSingle:
			if len(step.Options) == 0 {
				return errors.Validationf("single step %q has no options", step.ID)
			}
			for _, opt := range step.Options {
				if err := record(step.ID, opt); err != nil {
					return err
				}
			}

		case StepAccessories:
			if len(step.Categories) == 0 {
				return errors.Validationf("accessories step %q has no categories", step.ID)
			}
			for _, cat := range step.Categories {
				if cat.ID == "" {
					return errors.Validationf("step %q: category with empty ID", step.ID)
				}
				if len(cat.Options) == 0 {
					return errors.Validationf("category %q has no options", cat.ID)
				}
				optionIDs := make(map[string]bool, len(cat.Options))
				for _, opt := range cat.Options {
					if err := record(step.ID, opt); err != nil {
						return err
					}
					optionIDs[opt.ID] = true
				}
				for parent, styles := range cat.Styles {
					if !optionIDs[parent] {
						return errors.Validationf("category %q: styles key %q names no option", cat.ID, parent)
					}
					for _, style := range styles {
						if err := record(step.ID, style); err != nil {
							return err
						}
					}
				}
			}

		default:
			return errors.Validationf("step %q has unknown type %q", step.ID, step.Type)
		}
	}

	return nil
}

// Step returns the step with the given ID, or nil.
func (c *Catalog) Step(stepID string) *Step {
	for i := range c.Steps {
		if c.Steps[i].ID == stepID {
			return &c.Steps[i]
		}
	}
	return nil
}

// OptionCount returns the number of options across the whole catalog,
// style options included.
func (c *Catalog) OptionCount() int {
	n := 0
	for _, step := range c.Steps {
		n += len(step.Options)
		for _, cat := range step.Categories {
			n += len(cat.Options)
			for _, styles := range cat.Styles {
				n += len(styles)
			}
		}
	}
	return n
}

// FindOption looks an option up by ID within a step. Single steps scan
// their option list; accessories steps scan every category's options in
// declaration order, then every category's style lists. The first match
// wins, and a miss returns ok=false, never an error.
func (s *Step) FindOption(optionID string) (Option, bool) {
	if s.Type == StepAccessories {
		for _, cat := range s.Categories {
			for _, opt := range cat.Options {
				if opt.ID == optionID {
					return opt, true
				}
			}
			for _, styles := range cat.Styles {
				for _, style := range styles {
					if style.ID == optionID {
						return style, true
					}
				}
			}
		}
		return Option{}, false
	}

	for _, opt := range s.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return Option{}, false
}

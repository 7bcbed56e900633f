package catalog

import (
	"github.com/kitforge/kitforge/internal/models"
)

// Apply records one user selection and returns a new Selections value;
// the input map is never mutated. Single steps replace the stored option,
// accessory steps toggle membership (selecting an already-selected option
// deselects it). An unknown step ID is a no-op. Option IDs are not
// validated: a dangling ID resolves to nothing downstream and contributes
// zero to the total.
func (c *Catalog) Apply(sel models.Selections, stepID, optionID string) models.Selections {
	step := c.Step(stepID)
	if step == nil {
		return sel
	}

	next := sel.Clone()
	if step.Type != StepAccessories {
		next[stepID] = models.Single(optionID)
		return next
	}

	current := next[stepID].Options
	if next[stepID].Has(optionID) {
		ids := make([]string, 0, len(current)-1)
		for _, id := range current {
			if id != optionID {
				ids = append(ids, id)
			}
		}
		next[stepID] = models.Multiple(ids...)
	} else {
		ids := make([]string, 0, len(current)+1)
		ids = append(ids, current...)
		ids = append(ids, optionID)
		next[stepID] = models.Multiple(ids...)
	}
	return next
}

// StepCompleted reports whether a step holds at least one selection. For
// an accessories step any one accessory anywhere in the step counts; it
// does not require a pick per category.
func (c *Catalog) StepCompleted(stepID string, sel models.Selections) bool {
	step := c.Step(stepID)
	if step == nil {
		return false
	}
	return !sel[step.ID].Empty()
}

// CanEnterStep enforces strict linear gating: the first step is always
// enterable, any later step only once its immediate predecessor is
// completed. Completed earlier steps stay freely revisitable.
func (c *Catalog) CanEnterStep(stepID string, sel models.Selections) bool {
	for i, step := range c.Steps {
		if step.ID != stepID {
			continue
		}
		if i == 0 {
			return true
		}
		return c.StepCompleted(c.Steps[i-1].ID, sel)
	}
	return false
}

// TotalPrice sums the price of every currently selected option. Lookup
// misses contribute zero, and the sum is recomputed in full on every
// call, so the result is independent of map iteration order.
func (c *Catalog) TotalPrice(sel models.Selections) float64 {
	total := 0.0
	for stepID, selection := range sel {
		step := c.Step(stepID)
		if step == nil {
			continue
		}
		for _, optionID := range selection.IDs() {
			if opt, ok := step.FindOption(optionID); ok {
				total += opt.Price
			}
		}
	}
	return total
}

// LineItems flattens the selection map into priced, SKU-bearing rows,
// ordered by catalog step order and then by selection order within a
// step. A configuration is submittable iff the result is non-empty.
func (c *Catalog) LineItems(sel models.Selections) []models.LineItem {
	var items []models.LineItem
	for _, step := range c.Steps {
		for _, optionID := range sel[step.ID].IDs() {
			opt, ok := step.FindOption(optionID)
			if !ok {
				continue
			}
			items = append(items, models.LineItem{
				Name:      opt.Name,
				Price:     opt.Price,
				SKU:       opt.SKU,
				ProductID: opt.ProductID,
				VariantID: opt.VariantID,
			})
		}
	}
	return items
}

package services

import (
	"github.com/kitforge/kitforge/internal/catalog"
	"github.com/kitforge/kitforge/internal/logger"
	"github.com/kitforge/kitforge/internal/models"
)

// ConfiguratorService hosts the selection reduction and the derived-state
// projections over a loaded catalog. It carries no per-user state: the
// client owns its Selections value and sends it with every request.
type ConfiguratorService struct {
	log logger.Logger
	cat *catalog.Catalog
}

// NewConfiguratorService creates a new ConfiguratorService
func NewConfiguratorService(log logger.Logger, cat *catalog.Catalog) *ConfiguratorService {
	return &ConfiguratorService{log: log, cat: cat}
}

// StepState is the derived view of one step
type StepState struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Completed bool   `json:"completed"`
	Enterable bool   `json:"enterable"`
}

// ConfigurationState is everything the UI derives from a selection map.
// None of it is stored; it is recomputed in full after every mutation.
type ConfigurationState struct {
	Steps       []StepState       `json:"steps"`
	TotalPrice  float64           `json:"total_price"`
	LineItems   []models.LineItem `json:"line_items"`
	Submittable bool              `json:"submittable"`
}

// Catalog returns the active catalog
func (s *ConfiguratorService) Catalog() *catalog.Catalog {
	return s.cat
}

// ApplySelection applies one user selection and returns the new selection
// map. The step must exist and be enterable under the linear gating rule;
// the option ID is deliberately not validated (a dangling ID resolves to
// nothing and prices at zero).
func (s *ConfiguratorService) ApplySelection(sel models.Selections, stepID, optionID string) (models.Selections, error) {
	step := s.cat.Step(stepID)
	if step == nil {
		return nil, ErrUnknownStep
	}
	if !s.cat.CanEnterStep(stepID, sel) {
		return nil, ErrStepLocked
	}

	next := s.cat.Apply(sel, stepID, optionID)
	s.log.Debug("Selection applied", "step", stepID, "option", optionID, "total", s.cat.TotalPrice(next))
	return next, nil
}

// State computes the full derived state for a selection map
func (s *ConfiguratorService) State(sel models.Selections) *ConfigurationState {
	steps := make([]StepState, 0, len(s.cat.Steps))
	for _, step := range s.cat.Steps {
		steps = append(steps, StepState{
			ID:        step.ID,
			Title:     step.Title,
			Type:      step.Type,
			Completed: s.cat.StepCompleted(step.ID, sel),
			Enterable: s.cat.CanEnterStep(step.ID, sel),
		})
	}

	items := s.cat.LineItems(sel)
	return &ConfigurationState{
		Steps:       steps,
		TotalPrice:  s.cat.TotalPrice(sel),
		LineItems:   items,
		Submittable: len(items) > 0,
	}
}

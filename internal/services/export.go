package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kitforge/kitforge/internal/catalog"
	"github.com/kitforge/kitforge/internal/logger"
)

// ExportService flattens the catalog into a CSV for merchandising edits
type ExportService struct {
	log logger.Logger
	cat *catalog.Catalog
}

// NewExportService creates a new ExportService
func NewExportService(log logger.Logger, cat *catalog.Catalog) *ExportService {
	return &ExportService{log: log, cat: cat}
}

var exportHeader = []string{
	"step", "category", "type", "id", "name", "price", "sku",
	"product_id", "variant_id", "inventory_id",
}

// WriteCSV writes one row per option, style options included
func (s *ExportService) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	rows := 0
	write := func(stepID, categoryID, kind string, opt catalog.Option) error {
		rows++
		return cw.Write([]string{
			stepID,
			categoryID,
			kind,
			opt.ID,
			opt.Name,
			strconv.FormatFloat(opt.Price, 'f', 2, 64),
			opt.SKU,
			formatID(opt.ProductID),
			formatID(opt.VariantID),
			formatID(opt.InventoryID),
		})
	}

	for _, step := range s.cat.Steps {
		for _, opt := range step.Options {
			if err := write(step.ID, "", "option", opt); err != nil {
				return err
			}
		}
		for _, cat := range step.Categories {
			for _, opt := range cat.Options {
				if err := write(step.ID, cat.ID, "accessory", opt); err != nil {
					return err
				}
				for _, style := range cat.Styles[opt.ID] {
					if err := write(step.ID, cat.ID, "style", style); err != nil {
						return err
					}
				}
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.log.Debug("Catalog exported", "rows", rows)
	return nil
}

// formatID renders optional BigCommerce identifiers, leaving zero blank
func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

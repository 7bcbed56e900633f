package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

// testCatalog builds a small three-step catalog used across the package
// tests. The accessories step carries a category with dependent styles.
func testCatalog() *Catalog {
	return &Catalog{
		Steps: []Step{
			{
				ID:    "base-device",
				Title: "Choose Base Device",
				Type:  StepSingle,
				Options: []Option{
					{ID: "muzzle-brake", Name: "Muzzle Brake", Price: 89.99, SKU: "MB-001"},
					{ID: "flash-hider", Name: "Flash Hider", Price: 79.99, SKU: "FH-001"},
				},
			},
			{
				ID:    "material-finish",
				Title: "Choose Material/Finish",
				Type:  StepSingle,
				Options: []Option{
					{ID: "black-nitride", Name: "Black Nitride", Price: 15.00, SKU: "BN-001"},
					{ID: "polished-stainless", Name: "Polished Stainless", Price: 25.00, SKU: "PS-001"},
				},
			},
			{
				ID:    "accessories",
				Title: "Choose Accessories",
				Type:  StepAccessories,
				Categories: []Category{
					{
						ID:   "sound-redirect-sleeve",
						Name: "Sound Redirect Sleeve",
						Options: []Option{
							{ID: "sleeve-6in", Name: `6" Redirect Sleeve`, Price: 65.99, SKU: "SRS-6"},
						},
						Styles: map[string][]Option{
							"sleeve-6in": {
								{ID: "style-6in-standard", Name: "Standard", Price: 0, SKU: "SRS-6-STD"},
								{ID: "style-6in-vented", Name: "Vented", Price: 10.00, SKU: "SRS-6-VEN"},
							},
						},
					},
					{
						ID:   "hub-adapter",
						Name: "Hub Adapter",
						Options: []Option{
							{ID: "hub-black-nitride", Name: "Hub Adapter - Black Nitride", Price: 29.99, SKU: "HA-BN"},
							{ID: "hub-polished-stainless", Name: "Hub Adapter - Polished Stainless", Price: 39.99, SKU: "HA-PS"},
						},
					},
				},
			},
		},
	}
}

func TestDefault_LoadsAndValidates(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("expected embedded catalog to load, got: %v", err)
	}
	if len(c.Steps) != 3 {
		t.Errorf("expected 3 steps, got %d", len(c.Steps))
	}
	if c.Steps[0].ID != "base-device" {
		t.Errorf("expected first step base-device, got %q", c.Steps[0].ID)
	}
	if c.Steps[2].Type != StepAccessories {
		t.Errorf("expected last step to be accessories, got %q", c.Steps[2].Type)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/catalog.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"steps":[{"id":"s1","title":"S1","type":"single","options":[{"id":"o1","name":"O1","price":1.5}]}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("expected catalog to load, got: %v", err)
	}
	if len(c.Steps) != 1 || c.Steps[0].ID != "s1" {
		t.Errorf("unexpected catalog: %+v", c)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	if _, err := parse([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestValidate_AcceptsWellFormed(t *testing.T) {
	if err := testCatalog().Validate(); err != nil {
		t.Errorf("expected valid catalog, got: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Catalog)
	}{
		{"no steps", func(c *Catalog) { c.Steps = nil }},
		{"empty step ID", func(c *Catalog) { c.Steps[0].ID = "" }},
		{"duplicate step ID", func(c *Catalog) { c.Steps[1].ID = c.Steps[0].ID }},
		{"unknown step type", func(c *Catalog) { c.Steps[0].Type = "wizard" }},
		{"single step without options", func(c *Catalog) { c.Steps[0].Options = nil }},
		{"accessories step without categories", func(c *Catalog) { c.Steps[2].Categories = nil }},
		{"category without options", func(c *Catalog) { c.Steps[2].Categories[1].Options = nil }},
		{"empty option ID", func(c *Catalog) { c.Steps[0].Options[0].ID = "" }},
		{"negative price", func(c *Catalog) { c.Steps[0].Options[0].Price = -1 }},
		{"duplicate option ID across steps", func(c *Catalog) { c.Steps[1].Options[0].ID = "muzzle-brake" }},
		{"duplicate style ID", func(c *Catalog) {
			c.Steps[2].Categories[0].Styles["sleeve-6in"][0].ID = "hub-black-nitride"
		}},
		{"dangling styles key", func(c *Catalog) {
			c.Steps[2].Categories[0].Styles["no-such-sleeve"] = []Option{{ID: "orphan-style", Name: "X"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCatalog()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestStep_Lookup(t *testing.T) {
	c := testCatalog()

	if step := c.Step("accessories"); step == nil || step.Type != StepAccessories {
		t.Errorf("expected accessories step, got %+v", step)
	}
	if step := c.Step("no-such-step"); step != nil {
		t.Errorf("expected nil for unknown step, got %+v", step)
	}
}

func TestOptionCount_IncludesStyles(t *testing.T) {
	// 2 base + 2 finish + 1 sleeve + 2 styles + 2 hubs
	if n := testCatalog().OptionCount(); n != 9 {
		t.Errorf("expected 9 options, got %d", n)
	}
}

func TestFindOption_SingleStep(t *testing.T) {
	step := testCatalog().Step("base-device")

	opt, ok := step.FindOption("flash-hider")
	if !ok {
		t.Fatal("expected flash-hider to be found")
	}
	if opt.Price != 79.99 || opt.SKU != "FH-001" {
		t.Errorf("unexpected option: %+v", opt)
	}

	if _, ok := step.FindOption("no-such-option"); ok {
		t.Error("expected miss to return ok=false")
	}
}

func TestFindOption_AccessoriesStep(t *testing.T) {
	step := testCatalog().Step("accessories")

	opt, ok := step.FindOption("hub-black-nitride")
	if !ok {
		t.Fatal("expected hub adapter to be found")
	}
	if opt.Price != 29.99 {
		t.Errorf("expected 29.99, got %.2f", opt.Price)
	}

	style, ok := step.FindOption("style-6in-vented")
	if !ok {
		t.Fatal("expected style option to be found")
	}
	if style.Price != 10.00 || style.SKU != "SRS-6-VEN" {
		t.Errorf("unexpected style: %+v", style)
	}

	if _, ok := step.FindOption("no-such-option"); ok {
		t.Error("expected miss to return ok=false")
	}
}

func TestFindOption_FirstMatchWins(t *testing.T) {
	// Two categories carrying the same option ID: resolution must pick
	// the one in the earlier category.
	step := &Step{
		ID:   "accessories",
		Type: StepAccessories,
		Categories: []Category{
			{ID: "first", Options: []Option{{ID: "shared", Name: "First", Price: 1}}},
			{ID: "second", Options: []Option{{ID: "shared", Name: "Second", Price: 2}}},
		},
	}

	opt, ok := step.FindOption("shared")
	if !ok {
		t.Fatal("expected shared option to be found")
	}
	if opt.Name != "First" {
		t.Errorf("expected first declaration to win, got %q", opt.Name)
	}
}

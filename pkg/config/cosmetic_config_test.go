package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testCosmeticsYAML = `cosmetics:
  - id: cap_red
    name: "Red Cap"
    slot: hat
    color: "#d94f4f"
    shape: cap
    starter: true
  - id: crown_gold
    name: "Gold Crown"
    slot: hat
    color: "#e8c34a"
    shape: crown
  - id: bow_pink
    name: "Pink Bow"
    slot: neck
    color: "#e87aa4"
    shape: bow
    starter: true
  - id: cape_blue
    name: "Blue Cape"
    slot: back
    color: "#4a6fe8"
    shape: cape
`

func writeCatalog(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cosmetics.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

// TestLoadCosmeticCatalog 测试饰品目录加载与查找
func TestLoadCosmeticCatalog(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		catalog, err := LoadCosmeticCatalog(writeCatalog(t, testCosmeticsYAML))
		if err != nil {
			t.Fatalf("LoadCosmeticCatalog() failed: %v", err)
		}

		if len(catalog.All()) != 4 {
			t.Fatalf("Expected 4 cosmetics, got %d", len(catalog.All()))
		}

		item, ok := catalog.ByID("crown_gold")
		if !ok {
			t.Fatal("Expected to find crown_gold")
		}
		if item.Slot != SlotHat || item.Shape != CosmeticShapeCrown {
			t.Errorf("crown_gold: expected hat/crown, got %s/%s", item.Slot, item.Shape)
		}

		if _, ok := catalog.ByID("nonexistent"); ok {
			t.Error("Expected ByID to miss for unknown id")
		}

		slot, ok := catalog.SlotOf("cape_blue")
		if !ok || slot != SlotBack {
			t.Errorf("SlotOf(cape_blue) = %s/%v, expected back/true", slot, ok)
		}
		if _, ok := catalog.SlotOf("nonexistent"); ok {
			t.Error("Expected SlotOf to miss for unknown id")
		}
	})

	t.Run("slot grouping preserves order", func(t *testing.T) {
		catalog, err := LoadCosmeticCatalog(writeCatalog(t, testCosmeticsYAML))
		if err != nil {
			t.Fatalf("LoadCosmeticCatalog() failed: %v", err)
		}

		hats := catalog.ForSlot(SlotHat)
		if len(hats) != 2 || hats[0].ID != "cap_red" || hats[1].ID != "crown_gold" {
			t.Errorf("Expected hats [cap_red crown_gold], got %v", hats)
		}
		if backs := catalog.ForSlot(SlotBack); len(backs) != 1 {
			t.Errorf("Expected 1 back cosmetic, got %d", len(backs))
		}
	})

	t.Run("starter ids", func(t *testing.T) {
		catalog, err := LoadCosmeticCatalog(writeCatalog(t, testCosmeticsYAML))
		if err != nil {
			t.Fatalf("LoadCosmeticCatalog() failed: %v", err)
		}

		starters := catalog.StarterIDs()
		if len(starters) != 2 || starters[0] != "cap_red" || starters[1] != "bow_pink" {
			t.Errorf("Expected starters [cap_red bow_pink], got %v", starters)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadCosmeticCatalog("nonexistent-cosmetics.yaml")
		if err == nil {
			t.Error("Expected error for nonexistent file, got nil")
		}
	})

	t.Run("empty catalog rejected", func(t *testing.T) {
		_, err := LoadCosmeticCatalog(writeCatalog(t, "cosmetics: []\n"))
		if err == nil {
			t.Error("Expected error for empty catalog, got nil")
		}
	})

	t.Run("duplicate ids rejected", func(t *testing.T) {
		dupYAML := `cosmetics:
  - id: cap_red
    name: "Red Cap"
    slot: hat
    color: "#d94f4f"
    shape: cap
  - id: cap_red
    name: "Red Cap Again"
    slot: hat
    color: "#d94f4f"
    shape: cap
`
		_, err := LoadCosmeticCatalog(writeCatalog(t, dupYAML))
		if err == nil {
			t.Error("Expected error for duplicate cosmetic ids, got nil")
		}
	})
}

// TestValidateCosmetic 测试单件饰品校验规则
func TestValidateCosmetic(t *testing.T) {
	base := func() CosmeticConfig {
		return CosmeticConfig{
			ID:    "cap_red",
			Name:  "Red Cap",
			Slot:  SlotHat,
			Color: "#d94f4f",
			Shape: CosmeticShapeCap,
		}
	}

	tests := []struct {
		name   string
		mutate func(*CosmeticConfig)
	}{
		{"missing id", func(c *CosmeticConfig) { c.ID = "" }},
		{"missing name", func(c *CosmeticConfig) { c.Name = "" }},
		{"unknown slot", func(c *CosmeticConfig) { c.Slot = "tail" }},
		{"unknown shape", func(c *CosmeticConfig) { c.Shape = "halo" }},
		{"bad color", func(c *CosmeticConfig) { c.Color = "red" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			if err := validateCosmetic(&c); err == nil {
				t.Errorf("Expected validation error for %q, got nil", tt.name)
			}
		})
	}

	t.Run("valid base passes", func(t *testing.T) {
		c := base()
		if err := validateCosmetic(&c); err != nil {
			t.Errorf("Expected base cosmetic to pass validation, got %v", err)
		}
	})
}

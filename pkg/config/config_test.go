package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	// NerdFontsVersion can be empty (disabled), "2", or "3" - all valid

	// Theme colors should be set (either from defaults or config file)
	if len(cfg.UI.Theme.ActiveBorderColor) == 0 {
		t.Error("ActiveBorderColor should have a value")
	}

	if len(cfg.UI.Theme.InactiveBorderColor) == 0 {
		t.Error("InactiveBorderColor should have a value")
	}
}

func TestConfigStructure(t *testing.T) {
	cfg := &Config{
		UI: UIConfig{
			NerdFontsVersion: "2",
			Theme: ThemeConfig{
				ActiveBorderColor:   []string{"red", "bold"},
				InactiveBorderColor: []string{"gray"},
				OptionsTextColor:    []string{"white"},
				SelectedLineBgColor: []string{"#ff0000"},
			},
		},
	}

	if cfg.UI.NerdFontsVersion != "2" {
		t.Error("NerdFontsVersion not set correctly")
	}

	if len(cfg.UI.Theme.ActiveBorderColor) != 2 {
		t.Error("ActiveBorderColor should support multiple values")
	}

	if cfg.UI.Theme.SelectedLineBgColor[0] != "#ff0000" {
		t.Error("Should support hex color values")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := load(viper.New(), Default(), t.TempDir())
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config changed without a file (-want +got):\n%s", diff)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := writeConfig(t, `
ui:
  panelBreakpoint: 80
  currency: "$"
  theme:
    chipColor: ["magenta", "bold"]
catalog:
  path: ~/shop/catalog.json
facets:
  storageOptions: ["128GB", "256GB"]
  maxPrice: 150000
  priceStep: 1000
debug:
  logFile: /tmp/lazyshop.log
`)

	cfg, err := load(viper.New(), Default(), dir)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if cfg.UI.PanelBreakpoint != 80 {
		t.Errorf("PanelBreakpoint = %d, expected 80", cfg.UI.PanelBreakpoint)
	}
	if cfg.UI.Currency != "$" {
		t.Errorf("Currency = %q, expected $", cfg.UI.Currency)
	}
	if diff := cmp.Diff([]string{"magenta", "bold"}, cfg.UI.Theme.ChipColor); diff != "" {
		t.Errorf("ChipColor (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cyan"}, cfg.UI.Theme.ActiveBorderColor); diff != "" {
		t.Errorf("unset ActiveBorderColor lost its default (-want +got):\n%s", diff)
	}
	if cfg.Catalog.Path != "~/shop/catalog.json" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if diff := cmp.Diff([]string{"128GB", "256GB"}, cfg.Facets.StorageOptions); diff != "" {
		t.Errorf("StorageOptions (-want +got):\n%s", diff)
	}
	if cfg.Facets.RAMOptions != nil {
		t.Errorf("RAMOptions = %v, expected nil when unset", cfg.Facets.RAMOptions)
	}
	if cfg.Facets.MinPrice != nil {
		t.Errorf("MinPrice = %v, expected nil when unset", *cfg.Facets.MinPrice)
	}
	if cfg.Facets.MaxPrice == nil || *cfg.Facets.MaxPrice != 150000 {
		t.Errorf("MaxPrice = %v, expected 150000", cfg.Facets.MaxPrice)
	}
	if cfg.Facets.PriceStep != 1000 {
		t.Errorf("PriceStep = %v, expected 1000", cfg.Facets.PriceStep)
	}
	if cfg.Debug.LogFile != "/tmp/lazyshop.log" {
		t.Errorf("LogFile = %q", cfg.Debug.LogFile)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := writeConfig(t, "ui: [unclosed\n")
	if _, err := load(viper.New(), Default(), dir); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoadWrongType(t *testing.T) {
	dir := writeConfig(t, "ui:\n  panelBreakpoint: wide\n")
	if _, err := load(viper.New(), Default(), dir); err == nil {
		t.Error("expected error for non-numeric panelBreakpoint")
	}
}

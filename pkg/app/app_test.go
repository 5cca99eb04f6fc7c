package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/marjoballabani/lazyshop/pkg/catalog"
	"github.com/marjoballabani/lazyshop/pkg/config"
	"go.uber.org/zap"
)

func TestNewLoggerWithoutFileIsNop(t *testing.T) {
	logger, err := NewLogger(config.DebugConfig{})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		t.Error("expected a no-op logger")
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := NewLogger(config.DebugConfig{LogFile: path})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Debug("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file = %s, expected a hello entry", data)
	}
}

func TestOverrides(t *testing.T) {
	max := 1000.0
	got := Overrides(config.FacetsConfig{
		StorageOptions: []string{"1TB"},
		MaxPrice:       &max,
		PriceStep:      50,
	})
	expected := catalog.Overrides{
		StorageOptions: []string{"1TB"},
		MaxPrice:       &max,
		PriceStep:      50,
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Overrides() (-want +got):\n%s", diff)
	}
}

func TestLoadCatalog(t *testing.T) {
	min, max := 10000.0, 200000.0
	cfg := config.Default()
	cfg.Facets = config.FacetsConfig{MinPrice: &min, MaxPrice: &max, RAMOptions: []string{"8GB"}}
	a := &App{config: cfg, logger: zap.NewNop()}

	cat, reg, err := a.loadCatalog()
	if err != nil {
		t.Fatalf("loadCatalog() error = %v", err)
	}
	if a.catalog != cat || cat.Source() != "sample" {
		t.Errorf("catalog not recorded, source %q", cat.Source())
	}
	if reg.Bounds.Min != min || reg.Bounds.Max != max {
		t.Errorf("bounds = %+v, expected config overrides", reg.Bounds)
	}
	if diff := cmp.Diff([]string{"8GB"}, reg.RAMOptions); diff != "" {
		t.Errorf("RAM options (-want +got):\n%s", diff)
	}
	if len(reg.Brands) != len(cat.Brands) {
		t.Errorf("registry has %d brands, catalog %d", len(reg.Brands), len(cat.Brands))
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.json")
	a := &App{config: cfg, logger: zap.NewNop()}

	if _, _, err := a.loadCatalog(); err == nil {
		t.Error("expected an error for a missing catalog")
	}
}

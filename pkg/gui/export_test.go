package gui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/marjoballabani/lazyshop/pkg/filter"
)

func TestSaveFilter(t *testing.T) {
	g := newTestGui(t)
	g.ctrl.ToggleBrand("samsung")
	g.ctrl.ToggleStorage("256GB")
	g.ctrl.SetPriceRange(100000, 250000)

	dir := filepath.Join(t.TempDir(), "nested", "out")
	path, err := g.saveFilter(dir)
	if err != nil {
		t.Fatalf("saveFilter() error = %v", err)
	}
	if filepath.Base(path) != "lazyshop-filter-"+g.ctrl.ID().String()+".json" {
		t.Errorf("saved as %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved filter: %v", err)
	}
	var got filter.CombinedFilter
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("saved filter is not valid JSON: %v", err)
	}
	if diff := cmp.Diff(g.ctrl.Filter(), got); diff != "" {
		t.Errorf("saved filter mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveFilterUnwritableDir(t *testing.T) {
	g := newTestGui(t)
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := g.saveFilter(filepath.Join(file, "sub")); err == nil {
		t.Error("expected an error when the directory cannot be created")
	}
}

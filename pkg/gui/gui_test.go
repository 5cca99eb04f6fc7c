package gui

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/marjoballabani/lazyshop/pkg/catalog"
	"github.com/marjoballabani/lazyshop/pkg/config"
	"github.com/marjoballabani/lazyshop/pkg/filter"
	"github.com/pkg/errors"
)

func sampleLoader(t *testing.T, calls *int) Loader {
	t.Helper()
	return func() (*catalog.Catalog, filter.Registry, error) {
		if calls != nil {
			*calls++
		}
		cat, err := catalog.Sample()
		if err != nil {
			return nil, filter.Registry{}, err
		}
		return cat, cat.Registry(catalog.Overrides{}), nil
	}
}

func newTestGui(t *testing.T) *Gui {
	t.Helper()
	g, err := newGuiState(config.Default(), sampleLoader(t, nil), nil, "test")
	if err != nil {
		t.Fatalf("newGuiState() error = %v", err)
	}
	g.loadProducts()
	return g
}

func brandsOf(products []catalog.Product) map[string]int {
	out := map[string]int{}
	for _, p := range products {
		out[p.Brand]++
	}
	return out
}

func TestNewGuiStateLoadsProducts(t *testing.T) {
	g := newTestGui(t)

	if g.ctrl == nil || g.pane == nil {
		t.Fatal("controller was not mounted")
	}
	if g.productsLoading {
		t.Error("productsLoading still set after a synchronous load")
	}
	if len(g.products) != len(g.catalog.Products) {
		t.Errorf("loaded %d products, expected all %d", len(g.products), len(g.catalog.Products))
	}
	if n := g.ctrl.Notifications(); n != 0 {
		t.Errorf("mount notified %d times, expected 0", n)
	}
	if g.currentColumn != "filters" {
		t.Errorf("currentColumn = %q, expected filters", g.currentColumn)
	}
}

func TestNewGuiStateLoadError(t *testing.T) {
	load := func() (*catalog.Catalog, filter.Registry, error) {
		return nil, filter.Registry{}, errors.New("no catalog")
	}
	if _, err := newGuiState(config.Default(), load, nil, "test"); err == nil {
		t.Error("expected the loader error")
	}
}

func TestFilterChangeNarrowsProducts(t *testing.T) {
	tests := []struct {
		name     string
		apply    func(c *filter.Controller)
		expected map[string]int
	}{
		{
			name:     "one brand",
			apply:    func(c *filter.Controller) { c.ToggleBrand("apple") },
			expected: map[string]int{"Apple": 4},
		},
		{
			name: "two brands",
			apply: func(c *filter.Controller) {
				c.ToggleBrand("google")
				c.ToggleBrand("oneplus")
			},
			expected: map[string]int{"Google": 3, "OnePlus": 2},
		},
		{
			name: "brand then clear",
			apply: func(c *filter.Controller) {
				c.ToggleBrand("tecno")
				c.ClearAll()
			},
			expected: map[string]int{"Samsung": 5, "Apple": 4, "Google": 3, "Xiaomi": 3, "Tecno": 3, "Infinix": 3, "OnePlus": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGui(t)
			tt.apply(g.ctrl)
			if diff := cmp.Diff(tt.expected, brandsOf(g.products)); diff != "" {
				t.Errorf("products by brand mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterChangeClampsSelectedProduct(t *testing.T) {
	g := newTestGui(t)
	g.selectedProduct = len(g.products) - 1

	g.ctrl.ToggleBrand("oneplus")
	if g.selectedProduct != len(g.products)-1 {
		t.Errorf("selectedProduct = %d, expected %d", g.selectedProduct, len(g.products)-1)
	}

	g.ctrl.SetPriceRange(1, 2)
	if len(g.products) != 0 || g.selectedProduct != 0 {
		t.Errorf("empty result left %d products, selection %d", len(g.products), g.selectedProduct)
	}
}

func TestOverlayPreservesSelection(t *testing.T) {
	g := newTestGui(t)
	g.setVariant(variantOverlay)

	if err := g.doToggleOverlay(); err != nil {
		t.Fatalf("doToggleOverlay() error = %v", err)
	}
	if !g.overlayOpen || g.currentColumn != "filters" {
		t.Fatalf("overlay not open: open=%v column=%q", g.overlayOpen, g.currentColumn)
	}

	g.ctrl.ToggleBrand("samsung")
	g.ctrl.ToggleStorage("256GB")
	before := g.ctrl.Filter()
	notified := g.ctrl.Notifications()

	for i := 0; i < 3; i++ {
		if err := g.doToggleOverlay(); err != nil {
			t.Fatalf("doToggleOverlay() error = %v", err)
		}
	}
	if g.overlayOpen {
		t.Error("overlay should be closed after an even number of toggles")
	}
	if g.currentColumn != "products" {
		t.Errorf("currentColumn = %q, expected products", g.currentColumn)
	}
	if diff := cmp.Diff(before, g.ctrl.Filter()); diff != "" {
		t.Errorf("filter changed across open/close (-want +got):\n%s", diff)
	}
	if g.ctrl.Notifications() != notified {
		t.Errorf("open/close notified %d times", g.ctrl.Notifications()-notified)
	}
}

func TestSetVariant(t *testing.T) {
	g := newTestGui(t)
	g.ctrl.ToggleRAM("8GB")
	notified := g.ctrl.Notifications()

	g.setVariant(variantOverlay)
	if g.currentColumn != "products" {
		t.Errorf("overlay variant left focus on %q", g.currentColumn)
	}

	g.openOverlay()
	g.setVariant(variantPanel)
	if g.overlayOpen {
		t.Error("switching to the panel should close the overlay")
	}
	if !g.ctrl.Selection().HasRAM("8GB") {
		t.Error("variant switch dropped the selection")
	}
	if g.ctrl.Notifications() != notified {
		t.Error("variant switch notified the sink")
	}
}

func TestFinishLoadDropsStaleResults(t *testing.T) {
	stale := []catalog.Product{{ID: "stale"}}

	t.Run("controller emitted since", func(t *testing.T) {
		g := newTestGui(t)
		ctrl, seq := g.ctrl, g.ctrl.Notifications()
		g.ctrl.ToggleBrand("apple")
		current := g.products

		g.finishLoad(ctrl, seq, stale, nil)
		if diff := cmp.Diff(current, g.products); diff != "" {
			t.Errorf("stale load replaced products (-want +got):\n%s", diff)
		}
	})

	t.Run("controller replaced", func(t *testing.T) {
		g := newTestGui(t)
		old := g.ctrl
		if err := g.doReload(); err != nil {
			t.Fatalf("doReload() error = %v", err)
		}
		g.finishLoad(old, 0, stale, nil)
		if len(g.products) == 1 && g.products[0].ID == "stale" {
			t.Error("load for a replaced controller was installed")
		}
	})

	t.Run("current", func(t *testing.T) {
		g := newTestGui(t)
		g.productsLoading = true
		g.finishLoad(g.ctrl, g.ctrl.Notifications(), stale, nil)
		if g.productsLoading {
			t.Error("productsLoading not cleared")
		}
		if diff := cmp.Diff(stale, g.products); diff != "" {
			t.Errorf("products mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestEscapeChain(t *testing.T) {
	g := newTestGui(t)
	g.setVariant(variantOverlay)
	g.openOverlay()
	g.productsFilter = "pixel"
	g.filterInputActive = true
	g.priceEditorOpen = true
	g.modalOpen = true
	g.buildHelpPopup()
	g.helpOpen = true

	steps := []struct {
		name  string
		check func() bool
	}{
		{"help", func() bool { return !g.helpOpen && g.modalOpen }},
		{"modal", func() bool { return !g.modalOpen && g.priceEditorOpen }},
		{"price editor", func() bool { return !g.priceEditorOpen && g.filterInputActive }},
		{"search input", func() bool { return !g.filterInputActive && g.overlayOpen }},
		{"overlay", func() bool { return !g.overlayOpen && g.productsFilter == "pixel" }},
		{"committed search", func() bool { return g.productsFilter == "" }},
	}

	for _, st := range steps {
		if err := g.doEscape(); err != nil {
			t.Fatalf("%s: doEscape() error = %v", st.name, err)
		}
		if !st.check() {
			t.Fatalf("%s: escape closed the wrong thing", st.name)
		}
	}
}

func TestLogCommandKeepsLastTen(t *testing.T) {
	g := newTestGui(t)
	for i := 0; i < 15; i++ {
		g.logCommand("test", fmt.Sprintf("entry %d", i), "success")
	}

	if len(g.commandHistory) != 10 {
		t.Fatalf("history has %d entries, expected 10", len(g.commandHistory))
	}
	if got := g.commandHistory[0].Description; got != "entry 5" {
		t.Errorf("oldest entry = %q, expected entry 5", got)
	}
	if got := g.commandHistory[9].Description; got != "entry 14" {
		t.Errorf("newest entry = %q, expected entry 14", got)
	}
}

func TestReloadRemounts(t *testing.T) {
	calls := 0
	g, err := newGuiState(config.Default(), sampleLoader(t, &calls), nil, "test")
	if err != nil {
		t.Fatalf("newGuiState() error = %v", err)
	}
	g.loadProducts()
	g.ctrl.ToggleBrand("xiaomi")
	g.productsFilter = "redmi"
	oldID := g.ctrl.ID()

	if err := g.doReload(); err != nil {
		t.Fatalf("doReload() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("loader called %d times, expected 2", calls)
	}
	if g.ctrl.ID() == oldID {
		t.Error("reload kept the old controller")
	}
	if g.ctrl.HasActiveFilters() {
		t.Error("reload kept the old selection")
	}
	if g.productsFilter != "" {
		t.Errorf("reload kept the search %q", g.productsFilter)
	}
	if len(g.products) != len(g.catalog.Products) {
		t.Errorf("reload loaded %d products, expected %d", len(g.products), len(g.catalog.Products))
	}
}

func TestReloadFailureKeepsController(t *testing.T) {
	g := newTestGui(t)
	g.ctrl.ToggleBrand("apple")
	ctrl := g.ctrl
	g.load = func() (*catalog.Catalog, filter.Registry, error) {
		return nil, filter.Registry{}, errors.New("disk on fire")
	}

	if err := g.doReload(); err != nil {
		t.Fatalf("doReload() error = %v", err)
	}
	if g.ctrl != ctrl || !g.ctrl.Selection().HasBrand("apple") {
		t.Error("a failed reload replaced the controller")
	}
	last := g.commandHistory[len(g.commandHistory)-1]
	if last.Status != "error" {
		t.Errorf("last command status = %q, expected error", last.Status)
	}
}

func TestColumnNavigation(t *testing.T) {
	tests := []struct {
		name     string
		variant  variant
		start    string
		step     func(g *Gui) error
		expected string
	}{
		{"panel right from filters", variantPanel, "filters", (*Gui).doColumnRight, "products"},
		{"panel left wraps", variantPanel, "filters", (*Gui).doColumnLeft, "details"},
		{"panel tab", variantPanel, "products", (*Gui).doNextColumn, "details"},
		{"overlay skips filters", variantOverlay, "details", (*Gui).doColumnRight, "products"},
		{"overlay left wraps", variantOverlay, "products", (*Gui).doColumnLeft, "details"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGui(t)
			g.setVariant(tt.variant)
			g.currentColumn = tt.start
			if err := tt.step(g); err != nil {
				t.Fatalf("step error = %v", err)
			}
			if g.currentColumn != tt.expected {
				t.Errorf("currentColumn = %q, expected %q", g.currentColumn, tt.expected)
			}
		})
	}
}

func TestSpaceOnSliderOpensPriceEditor(t *testing.T) {
	g := newTestGui(t)
	rows := g.pane.rows()
	slider := -1
	for i, r := range rows {
		if r.kind == rowPriceSlider {
			slider = i
		}
	}
	if !g.pane.Select(slider) {
		t.Fatalf("could not select slider row %d", slider)
	}

	if err := g.doSpace(); err != nil {
		t.Fatalf("doSpace() error = %v", err)
	}
	if !g.priceEditorOpen {
		t.Error("price editor did not open")
	}
	if g.getContext() != ContextPrice {
		t.Errorf("context = %q, expected %q", g.getContext(), ContextPrice)
	}
}

func TestSpaceTogglesOption(t *testing.T) {
	g := newTestGui(t)
	g.pane.MoveDown() // first brand

	if err := g.doSpace(); err != nil {
		t.Fatalf("doSpace() error = %v", err)
	}
	if g.ctrl.Notifications() != 1 {
		t.Errorf("notifications = %d, expected 1", g.ctrl.Notifications())
	}
	if !g.ctrl.Selection().HasBrand("apple") {
		t.Error("first brand not selected")
	}
	if len(g.products) != 4 {
		t.Errorf("products = %d, expected 4", len(g.products))
	}
}

func TestNudgeKeys(t *testing.T) {
	g := newTestGui(t)
	b := g.ctrl.Registry().Bounds
	step := g.ctrl.Registry().PriceStep

	for _, h := range []func() error{g.nudge(1, 0), g.nudge(1, 0), g.nudge(0, -1)} {
		if err := h(); err != nil {
			t.Fatalf("nudge error = %v", err)
		}
	}

	expected := filter.PriceRange{Low: b.Min + 2*step, High: b.Max - step}
	if diff := cmp.Diff(expected, g.ctrl.Selection().PriceRange()); diff != "" {
		t.Errorf("price range mismatch (-want +got):\n%s", diff)
	}
	if err := g.doClearAll(); err != nil {
		t.Fatalf("doClearAll() error = %v", err)
	}
	if g.ctrl.HasActiveFilters() {
		t.Error("clear all left filters active")
	}
}

func TestFailedFilterStopsLoading(t *testing.T) {
	g := newTestGui(t)
	before := g.products
	g.productsLoading = true
	g.cancel()

	g.ctrl.ToggleBrand("apple")

	if g.productsLoading {
		t.Error("spinner left running after a failed filter")
	}
	last := g.commandHistory[len(g.commandHistory)-1]
	if last.Command != "filter" || last.Status != "error" {
		t.Errorf("last command = %+v, expected a filter error", last)
	}
	if diff := cmp.Diff(before, g.products); diff != "" {
		t.Errorf("failed filter changed products (-want +got):\n%s", diff)
	}
}

func TestClicksWhileModalOpen(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Gui)
	}{
		{"price editor", func(g *Gui) { g.priceEditorOpen = true }},
		{"command log", func(g *Gui) { g.modalOpen = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGui(t)
			g.currentColumn = "products"
			tt.setup(g)

			if err := g.doFiltersClick(); err != nil {
				t.Fatalf("doFiltersClick() error = %v", err)
			}
			if g.currentColumn != "products" {
				t.Errorf("click moved focus to %q", g.currentColumn)
			}
			if g.ctrl.Notifications() != 0 {
				t.Error("click reached the filters behind a modal")
			}
		})
	}
}

func TestProductsClickLogsSearchError(t *testing.T) {
	g := newTestGui(t)
	g.productsFilter = ".price <"
	g.selectedProduct = 2

	if err := g.doProductsClick(); err != nil {
		t.Fatalf("doProductsClick() error = %v", err)
	}
	last := g.commandHistory[len(g.commandHistory)-1]
	if last.Command != "search" || last.Status != "error" {
		t.Errorf("last command = %+v, expected a search error", last)
	}
	if g.selectedProduct != 2 {
		t.Errorf("selectedProduct = %d, expected it unchanged", g.selectedProduct)
	}
}

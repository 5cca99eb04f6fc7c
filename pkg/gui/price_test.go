package gui

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/marjoballabani/lazyshop/pkg/filter"
)

func TestParsePriceInput(t *testing.T) {
	tests := []struct {
		input     string
		expected  float64
		expectErr bool
	}{
		{"20000", 20000, false},
		{"20,000", 20000, false},
		{"₦20,000", 20000, false},
		{" ₦ 150 000 ", 150000, false},
		{"1_500", 1500, false},
		{"20k", 20000, false},
		{"20K", 20000, false},
		{"1.5m", 1500000, false},
		{"12.5", 12.5, false},
		{"", 0, true},
		{"₦", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"k", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePriceInput(tt.input, "₦")
			if tt.expectErr {
				if err == nil {
					t.Errorf("parsePriceInput(%q) = %v, expected an error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePriceInput(%q) error = %v", tt.input, err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("parsePriceInput(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPriceEditorApply(t *testing.T) {
	g := newTestGui(t)
	if err := g.openPriceEditor(); err != nil {
		t.Fatal(err)
	}
	if g.priceLowText != "0" || g.priceHighText != "300000" {
		t.Fatalf("buffers = %q, %q", g.priceLowText, g.priceHighText)
	}

	// edit the low bound
	if err := g.priceActivate(); err != nil {
		t.Fatal(err)
	}
	if !g.priceEditMode {
		t.Fatal("Enter on the low row should start editing")
	}
	if err := g.priceMoveDown(); err != nil {
		t.Fatal(err)
	}
	if g.priceRow != priceRowLow {
		t.Error("rows moved while editing")
	}
	g.commitPriceEdit("not a price")
	if !g.priceEditMode || g.priceError == "" {
		t.Fatal("an invalid entry should keep the input open with an error")
	}
	g.commitPriceEdit("50k")
	if g.priceEditMode || g.priceLowText != "50000" {
		t.Fatalf("commit left editing=%v low=%q", g.priceEditMode, g.priceLowText)
	}
	if g.ctrl.Notifications() != 0 {
		t.Error("a buffered edit notified the sink")
	}

	// edit the high bound
	if err := g.priceMoveDown(); err != nil {
		t.Fatal(err)
	}
	if err := g.priceActivate(); err != nil {
		t.Fatal(err)
	}
	g.commitPriceEdit("₦200,000")

	// apply
	if err := g.priceMoveDown(); err != nil {
		t.Fatal(err)
	}
	if err := g.priceActivate(); err != nil {
		t.Fatal(err)
	}
	if g.priceEditorOpen {
		t.Error("apply should close the editor")
	}
	if g.ctrl.Notifications() != 1 {
		t.Errorf("apply notified %d times, expected 1", g.ctrl.Notifications())
	}
	if diff := cmp.Diff(filter.PriceRange{Low: 50000, High: 200000}, g.ctrl.Selection().PriceRange()); diff != "" {
		t.Errorf("price range mismatch (-want +got):\n%s", diff)
	}
	for _, p := range g.products {
		if p.Price < 50000 || p.Price > 200000 {
			t.Errorf("product %s at %v is outside the range", p.ID, p.Price)
		}
	}
}

func TestPriceEditorApplyClamps(t *testing.T) {
	g := newTestGui(t)
	if err := g.openPriceEditor(); err != nil {
		t.Fatal(err)
	}
	g.priceLowText = "-100"
	g.priceHighText = "1m"
	g.priceRow = priceRowApply
	if err := g.priceActivate(); err != nil {
		t.Fatal(err)
	}

	b := g.ctrl.Registry().Bounds
	if diff := cmp.Diff(filter.PriceRange{Low: b.Min, High: b.Max}, g.ctrl.Selection().PriceRange()); diff != "" {
		t.Errorf("price range mismatch (-want +got):\n%s", diff)
	}
}

func TestPriceEditorReset(t *testing.T) {
	g := newTestGui(t)
	g.ctrl.SetPriceRange(40000, 90000)
	if err := g.openPriceEditor(); err != nil {
		t.Fatal(err)
	}
	if g.priceLowText != "40000" || g.priceHighText != "90000" {
		t.Fatalf("buffers = %q, %q", g.priceLowText, g.priceHighText)
	}

	// up from the first row wraps to reset
	if err := g.priceMoveUp(); err != nil {
		t.Fatal(err)
	}
	if g.priceRow != priceRowReset {
		t.Fatalf("priceRow = %d, expected reset", g.priceRow)
	}
	if err := g.priceActivate(); err != nil {
		t.Fatal(err)
	}
	if g.priceEditorOpen || g.ctrl.HasActiveFilters() {
		t.Errorf("reset left open=%v active=%v", g.priceEditorOpen, g.ctrl.HasActiveFilters())
	}
}

func TestPriceEditorEscape(t *testing.T) {
	g := newTestGui(t)
	if err := g.openPriceEditor(); err != nil {
		t.Fatal(err)
	}
	g.priceLowText = "90000"
	if err := g.doEscape(); err != nil {
		t.Fatal(err)
	}
	if g.priceEditorOpen {
		t.Error("escape did not close the editor")
	}
	if g.ctrl.Notifications() != 0 {
		t.Error("closing without apply changed the filter")
	}
}

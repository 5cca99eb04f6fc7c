package gui

import (
	"fmt"

	"github.com/jesseduffield/gocui"
)

// Actions - clean handler functions without state checks.
// State checks are handled by the binding system's GetDisabledReason.

// doQuit exits the application
func (g *Gui) doQuit() error {
	return gocui.ErrQuit
}

// doEscape closes the topmost thing that is open
func (g *Gui) doEscape() error {
	// Priority: help popup > command modal > price editor > search input > overlay > committed search
	if g.helpOpen {
		g.helpOpen = false
		g.helpPopup = nil
		return g.refresh()
	}
	if g.modalOpen {
		g.modalOpen = false
		return g.refresh()
	}
	if g.priceEditorOpen {
		return g.closePriceEditor()
	}
	if g.filterInputActive {
		return g.cancelSearchInput()
	}
	if g.overlayOpen {
		g.closeOverlay()
		return g.refresh()
	}
	if g.productsFilter != "" {
		return g.clearSearch()
	}
	return nil
}

// doToggleHelp toggles the help popup
func (g *Gui) doToggleHelp() error {
	if g.helpOpen {
		g.helpOpen = false
		g.helpPopup = nil
	} else {
		g.buildHelpPopup()
		g.helpOpen = true
	}
	return g.refresh()
}

// doToggleModal toggles the command log modal
func (g *Gui) doToggleModal() error {
	g.modalOpen = !g.modalOpen
	return g.refresh()
}

// Context-specific handlers for help popup
func (g *Gui) helpMoveUp() error {
	if g.helpPopup != nil {
		g.helpPopup.MoveUp()
	}
	return g.refresh()
}

func (g *Gui) helpMoveDown() error {
	if g.helpPopup != nil {
		g.helpPopup.MoveDown()
	}
	return g.refresh()
}

func (g *Gui) helpClose() error {
	// Get selected item before closing
	var action func() error
	if g.helpPopup != nil {
		item := g.helpPopup.GetSelectedItem()
		if item != nil && item.Action != nil {
			action = item.Action
		}
	}

	// Close popup
	g.helpOpen = false
	g.helpPopup = nil

	// Execute action if any
	if action != nil {
		return action()
	}
	return g.refresh()
}

// Context-specific handlers for search input
func (g *Gui) filterCursorLeft() error {
	if g.filterCursorPos > 0 {
		g.filterCursorPos--
	}
	return g.refresh()
}

func (g *Gui) filterCursorRight() error {
	if g.filterCursorPos < len(g.filterInputText) {
		g.filterCursorPos++
	}
	return g.refresh()
}

// filterInsert types ch into the search input; used by keys that do
// something else outside of search.
func (g *Gui) filterInsert(ch rune) func() error {
	return func() error { return g.insertFilterChar(ch) }
}

// Block handler - does nothing (for modal context)
func (g *Gui) blockAction() error {
	return nil
}

// columns lists the focusable panels left to right. The filters panel only
// takes focus while it is on screen.
func (g *Gui) columns() []string {
	if g.variant == variantOverlay && !g.overlayOpen {
		return []string{"products", "details"}
	}
	return []string{"filters", "products", "details"}
}

func (g *Gui) stepColumn(dir int) error {
	cols := g.columns()
	idx := 0
	for i, c := range cols {
		if c == g.currentColumn {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(cols)) % len(cols)
	return g.setFocus(cols[idx])
}

// doColumnLeft switches to the panel on the left
func (g *Gui) doColumnLeft() error {
	return g.stepColumn(-1)
}

// doColumnRight switches to the panel on the right
func (g *Gui) doColumnRight() error {
	return g.stepColumn(1)
}

// doNextColumn cycles to the next panel
func (g *Gui) doNextColumn() error {
	return g.stepColumn(1)
}

// doCursorUp moves selection up in current panel
func (g *Gui) doCursorUp() error {
	switch g.currentColumn {
	case "filters":
		g.pane.MoveUp()
	case "products":
		if g.selectedProduct > 0 {
			g.selectedProduct--
			g.detailsScrollPos = 0
		}
	case "details":
		if g.detailsScrollPos > 0 {
			g.detailsScrollPos--
		}
	}
	return g.refresh()
}

// doCursorDown moves selection down in current panel
func (g *Gui) doCursorDown() error {
	switch g.currentColumn {
	case "filters":
		g.pane.MoveDown()
	case "products":
		filtered, _ := g.getFilteredProducts()
		if g.selectedProduct < len(filtered)-1 {
			g.selectedProduct++
			g.detailsScrollPos = 0
		}
	case "details":
		g.detailsScrollPos++
	}
	return g.refresh()
}

// doSpace - normal mode space handler
func (g *Gui) doSpace() error {
	switch g.currentColumn {
	case "filters":
		if g.pane.Activate() {
			return g.openPriceEditor()
		}
		return g.refresh()
	case "products":
		return g.setFocus("details")
	}
	return nil
}

// doEnter - normal mode enter handler
func (g *Gui) doEnter() error {
	return g.doSpace()
}

// doToggleOverlay opens or closes the filter sheet. With the panel variant
// the filters are always visible, so it focuses them instead.
func (g *Gui) doToggleOverlay() error {
	if g.helpOpen {
		g.helpOpen = false
		g.helpPopup = nil
		return g.refresh()
	}
	if g.variant == variantPanel {
		return g.setFocus("filters")
	}
	if g.overlayOpen {
		g.closeOverlay()
	} else {
		g.openOverlay()
	}
	return g.refresh()
}

// openOverlay shows the filter sheet and moves focus into it.
func (g *Gui) openOverlay() {
	if g.overlayOpen {
		return
	}
	g.overlayOpen = true
	g.previousColumn = g.currentColumn
	g.currentColumn = "filters"
	g.logCommand("f", "Filters opened", "success")
}

// closeOverlay hides the filter sheet. The selection is untouched.
func (g *Gui) closeOverlay() {
	if !g.overlayOpen {
		return
	}
	g.overlayOpen = false
	g.currentColumn = g.previousColumn
	if g.currentColumn == "" || g.currentColumn == "filters" {
		g.currentColumn = "products"
	}
	g.logCommand("f", fmt.Sprintf("Filters closed, %s", triggerLabel(g.ctrl)), "success")
}

func (g *Gui) doClearAll() error {
	g.ctrl.ClearAll()
	return g.refresh()
}

// nudge returns a handler moving the price handles by whole steps.
func (g *Gui) nudge(lowSteps, highSteps int) func() error {
	return func() error {
		g.ctrl.NudgePrice(lowSteps, highSteps)
		return g.refresh()
	}
}

// doFilterBackspace handles backspace in search mode
func (g *Gui) doFilterBackspace() error {
	if !g.filterInputActive {
		return nil
	}
	return g.deleteFilterChar()
}

// makeFilterCharAction creates a handler for a specific character
func (g *Gui) makeFilterCharAction(ch rune) func() error {
	return func() error {
		if !g.filterInputActive {
			return nil
		}
		return g.insertFilterChar(ch)
	}
}

// doCopyJSON copies the combined filter to the clipboard
func (g *Gui) doCopyJSON() error {
	return g.copyJSONAction()
}

// doSaveJSON saves the combined filter to a file
func (g *Gui) doSaveJSON() error {
	return g.saveJSONAction()
}

// doReload reads the catalog again and mounts a fresh controller over it.
func (g *Gui) doReload() error {
	g.logCommand("r", "Reloading catalog...", "running")

	cat, reg, err := g.load()
	if err != nil {
		g.logCommand("r", fmt.Sprintf("Failed: %v", err), "error")
		return g.refresh()
	}

	g.closeOverlay()
	g.mount(cat, reg)
	g.productsFilter = ""
	g.logCommand("r", fmt.Sprintf("Loaded %d products from %s", len(cat.Products), cat.Source()), "success")
	g.loadProducts()
	return g.refresh()
}

// Mouse click handlers

// clickedLine is the content line under the last click in view name.
func (g *Gui) clickedLine(name string) (int, bool) {
	if g.g == nil {
		return 0, false
	}
	v, _ := g.g.View(name)
	if v == nil {
		return 0, false
	}
	_, cy := v.Cursor()
	_, oy := v.Origin()
	return cy + oy, true
}

func (g *Gui) doHelpClick() error {
	if g.helpPopup == nil {
		return nil
	}
	if line, ok := g.clickedLine(g.views.helpModal); ok {
		g.helpPopup.Select(line)
	}
	return g.refresh()
}

func (g *Gui) doFiltersClick() error {
	if g.helpOpen {
		g.helpOpen = false
		g.helpPopup = nil
		return g.refresh()
	}
	// the price editor and command log own input while open
	if g.isModalOpen() {
		return nil
	}
	g.currentColumn = "filters"
	line, ok := g.clickedLine(g.views.filters)
	if ok && g.pane.Select(line) {
		if g.pane.Activate() {
			return g.openPriceEditor()
		}
	}
	return g.refresh()
}

func (g *Gui) doProductsClick() error {
	if g.helpOpen {
		g.helpOpen = false
		g.helpPopup = nil
		return g.refresh()
	}
	// Clicking past the sheet dismisses it
	g.closeOverlay()
	g.currentColumn = "products"

	line, ok := g.clickedLine(g.views.products)
	filtered, err := g.getFilteredProducts()
	if err != nil {
		g.logCommand("search", err.Error(), "error")
		return g.refresh()
	}
	if ok && line >= 0 && line < len(filtered) {
		g.selectedProduct = line
		g.detailsScrollPos = 0
	}
	return g.refresh()
}

func (g *Gui) doDetailsClick() error {
	if g.helpOpen {
		g.helpOpen = false
		g.helpPopup = nil
		return g.refresh()
	}
	g.closeOverlay()
	g.currentColumn = "details"
	return g.refresh()
}

func (g *Gui) doOutsideClick() error {
	if g.helpOpen {
		g.helpOpen = false
		g.helpPopup = nil
		return g.refresh()
	}
	if g.overlayOpen {
		g.closeOverlay()
		return g.refresh()
	}
	return nil
}

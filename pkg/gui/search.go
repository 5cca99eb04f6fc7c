package gui

import (
	"fmt"
	"strings"

	"github.com/marjoballabani/lazyshop/pkg/catalog"
)

func (g *Gui) startSearch() error {
	// Don't start search if modal/help is open or already typing
	if g.helpOpen || g.modalOpen || g.priceEditorOpen || g.filterInputActive {
		return nil
	}
	if g.overlayOpen {
		g.closeOverlay()
	}
	g.productsFilter = ""
	g.currentColumn = "products"
	g.filterInputActive = true
	g.filterInputText = ""
	g.filterCursorPos = 0
	return g.refresh()
}

func (g *Gui) commitSearch() error {
	// Save search and exit input mode (search stays active)
	g.productsFilter = g.filterInputText
	g.selectedProduct = 0
	g.detailsScrollPos = 0

	g.filterInputActive = false
	g.filterInputText = ""
	g.filterCursorPos = 0

	if g.productsFilter != "" {
		filtered, err := g.getFilteredProducts()
		if err != nil {
			g.logCommand("search", err.Error(), "error")
		} else {
			g.logCommand("search", fmt.Sprintf("'%s' matched %d products", g.productsFilter, len(filtered)), "success")
		}
	}
	return g.refresh()
}

func (g *Gui) clearSearch() error {
	g.productsFilter = ""
	g.selectedProduct = 0
	return g.refresh()
}

func (g *Gui) cancelSearchInput() error {
	g.filterInputActive = false
	g.filterInputText = ""
	g.filterCursorPos = 0
	return g.refresh()
}

// insertFilterChar inserts a character at the cursor position
func (g *Gui) insertFilterChar(ch rune) error {
	g.filterInputText = g.filterInputText[:g.filterCursorPos] + string(ch) + g.filterInputText[g.filterCursorPos:]
	g.filterCursorPos++
	g.selectedProduct = 0
	return g.refresh()
}

func (g *Gui) deleteFilterChar() error {
	if g.filterCursorPos > 0 && len(g.filterInputText) > 0 {
		g.filterInputText = g.filterInputText[:g.filterCursorPos-1] + g.filterInputText[g.filterCursorPos:]
		g.filterCursorPos--
	}
	return g.refresh()
}

// activeSearch is the text being typed, or else the committed search.
func (g *Gui) activeSearch() string {
	if g.filterInputActive {
		return g.filterInputText
	}
	return g.productsFilter
}

// getFilteredProducts narrows the filtered catalog by the product search.
func (g *Gui) getFilteredProducts() ([]catalog.Product, error) {
	text := g.activeSearch()
	if text == "" {
		return g.products, nil
	}
	// a jq query is incomplete while it is being typed
	if g.filterInputActive && strings.HasPrefix(text, ".") {
		if res, err := catalog.Search(g.products, text); err == nil {
			return res, nil
		}
		return g.products, nil
	}
	return catalog.Search(g.products, text)
}

package gui

import (
	"github.com/jesseduffield/gocui"
)

// State checking helpers

func (g *Gui) isModalOpen() bool {
	return g.modalOpen || g.helpOpen || g.priceEditorOpen
}

// setFocus sets the current column; Layout moves gocui's current view to it.
func (g *Gui) setFocus(column string) error {
	if column == "filters" && g.variant == variantOverlay {
		g.openOverlay()
		return g.refresh()
	}
	if column != "filters" && g.overlayOpen {
		g.closeOverlay()
	}
	g.currentColumn = column
	return g.refresh()
}

// Help popup builder

func (g *Gui) buildHelpPopup() {
	items := []PopupItem{
		{Key: "", Label: "Global", IsHeader: true},
		{Key: "←/→ h/l", Label: "Switch panels"},
		{Key: "↑/↓ j/k", Label: "Move up/down"},
		{Key: "f", Label: "Open / close filters", Action: g.doToggleOverlay},
		{Key: "x", Label: "Clear all filters", Action: g.doClearAll},
		{Key: "p", Label: "Edit price range", Action: g.openPriceEditor},
		{Key: "/", Label: "Search products (. for jq)", Action: g.startSearch},
		{Key: "Esc", Label: "Back / Close"},
		{Key: "r", Label: "Reload catalog", Action: g.doReload},
		{Key: "c", Label: "Copy filter JSON", Action: g.doCopyJSON},
		{Key: "s", Label: "Save filter JSON", Action: g.doSaveJSON},
		{Key: "@", Label: "Command log", Action: g.doToggleModal},
		{Key: "?", Label: "This help"},
		{Key: "q", Label: "Quit", Action: g.doQuit},
		{Key: "", Label: g.getPanelName(), IsHeader: true},
	}

	switch g.currentColumn {
	case "filters":
		items = append(items,
			PopupItem{Key: "Space", Label: "Toggle option / Remove chip", Action: g.doSpace},
			PopupItem{Key: "[ ]", Label: "Lower / raise min price"},
			PopupItem{Key: "{ }", Label: "Lower / raise max price"},
		)
	case "products":
		items = append(items,
			PopupItem{Key: "Enter", Label: "Show details", Action: g.doEnter},
		)
	case "details":
		items = append(items,
			PopupItem{Key: "j/k", Label: "Scroll content"},
		)
	}

	g.helpPopup = NewPopup("Keyboard Shortcuts", items, g.theme)
}

func (g *Gui) renderHelpContent(v *gocui.View) {
	if g.helpPopup == nil {
		return
	}
	g.helpPopup.Render(v)
}

func (g *Gui) getPanelName() string {
	return g.getPanelNameFor(g.currentColumn)
}

func (g *Gui) getPanelNameFor(panel string) string {
	switch panel {
	case "filters":
		return "Filters"
	case "products":
		return "Products"
	case "details":
		return "Details"
	default:
		return "Panel"
	}
}

package gui

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jesseduffield/gocui"
	"github.com/marjoballabani/lazyshop/pkg/catalog"
	"github.com/marjoballabani/lazyshop/pkg/gui/icons"
)

// variant selects how the filter UI is presented.
type variant int

const (
	variantPanel   variant = iota // permanent left panel
	variantOverlay                // trigger bar plus a pop-out sheet
)

func (v variant) String() string {
	if v == variantOverlay {
		return "overlay"
	}
	return "panel"
}

// chooseVariant picks the panel layout on terminals at least breakpoint
// columns wide.
func chooseVariant(width, breakpoint int) variant {
	if width >= breakpoint {
		return variantPanel
	}
	return variantOverlay
}

type box struct {
	x0, y0, x1, y1 int
}

type layoutBoxes struct {
	filters  box
	trigger  box
	products box
	details  box
	commands box
	help     box

	showFilters bool
	showTrigger bool
}

const commandsHeight = 3

// computeLayout positions every base view for a screen of maxX by maxY.
func computeLayout(maxX, maxY int, v variant, overlayOpen bool) layoutBoxes {
	var l layoutBoxes
	bottom := maxY - 3 // Leave room for help bar
	l.help = box{0, maxY - 2, maxX - 1, maxY}

	left, top := 0, 0
	switch v {
	case variantPanel:
		leftWidth := maxX / 3
		l.filters = box{0, 0, leftWidth - 1, bottom}
		l.showFilters = true
		left = leftWidth
	case variantOverlay:
		l.trigger = box{0, 0, maxX - 1, 2}
		l.showTrigger = true
		top = 3
		if overlayOpen {
			sheet := maxX * 3 / 4
			if sheet < 30 {
				sheet = maxX - 1
			}
			l.filters = box{0, 0, sheet, bottom}
			l.showFilters = true
		}
	}

	commandsTop := maxY - commandsHeight - 2
	split := top + (commandsTop-top)/2
	l.products = box{left, top, maxX - 1, split - 1}
	l.details = box{left, split, maxX - 1, commandsTop - 1}
	l.commands = box{left, commandsTop, maxX - 1, bottom}
	return l
}

// setVariant applies a variant change. Neither direction touches the
// controller: the selection survives every resize.
func (g *Gui) setVariant(v variant) {
	if v == g.variant {
		return
	}
	g.variant = v
	switch v {
	case variantPanel:
		g.overlayOpen = false
	case variantOverlay:
		if g.currentColumn == "filters" {
			g.currentColumn = "products"
		}
	}
	g.logCommand("layout", fmt.Sprintf("Switched to %s view", v), "success")
}

func (g *Gui) setView(gui *gocui.Gui, name string, b box, setup func(v *gocui.View)) (*gocui.View, error) {
	v, err := gui.SetView(name, b.x0, b.y0, b.x1, b.y1, 0)
	if err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return nil, err
		}
		v.BgColor = gocui.ColorDefault
		v.FgColor = gocui.ColorDefault
		v.SelBgColor = g.theme.SelectedLineBgColor
		v.SelFgColor = gocui.ColorDefault
		v.FrameRunes = g.roundedFrameRunes
		if setup != nil {
			setup(v)
		}
	}
	return v, nil
}

// styleFrame colours a panel frame: the filter colour when focused with
// filters applied, the active colour when focused, inactive otherwise.
func (g *Gui) styleFrame(gui *gocui.Gui, v *gocui.View, focused, filtered bool) {
	switch {
	case focused && filtered:
		// Must set global SelFrameColor because gocui uses it for focused views
		gui.SelFrameColor = g.theme.FilterBorderColor
		gui.SelFgColor = g.theme.FilterBorderColor
		v.TitleColor = g.theme.FilterBorderColor
		v.FrameColor = g.theme.FilterBorderColor
	case focused:
		gui.SelFrameColor = g.theme.ActiveBorderColor
		gui.SelFgColor = g.theme.ActiveBorderColor
		v.TitleColor = g.theme.ActiveBorderColor
		v.FrameColor = g.theme.ActiveBorderColor
	default:
		v.TitleColor = g.theme.InactiveBorderColor
		v.FrameColor = g.theme.InactiveBorderColor
	}
}

func (g *Gui) Layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	g.setVariant(chooseVariant(maxX, g.config.UI.PanelBreakpoint))
	boxes := computeLayout(maxX, maxY, g.variant, g.overlayOpen)

	// Background view (covers entire screen, behind everything)
	if v, err := gui.SetView(g.views.background, -1, -1, maxX, maxY, 0); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorDefault
		v.FgColor = gocui.ColorDefault
	}

	// Overlay trigger bar
	if boxes.showTrigger {
		v, err := g.setView(gui, g.views.trigger, boxes.trigger, nil)
		if err != nil {
			return err
		}
		g.styleFrame(gui, v, false, g.ctrl.HasActiveFilters())
		if g.ctrl.HasActiveFilters() {
			v.FrameColor = g.theme.FilterBorderColor
		}
		g.updateTriggerView(v)
	} else {
		gui.DeleteView(g.views.trigger)
	}

	// Products panel
	v, err := g.setView(gui, g.views.products, boxes.products, func(v *gocui.View) {
		v.Title = " " + icons.PRODUCT_ICON + " Products "
	})
	if err != nil {
		return err
	}
	g.styleFrame(gui, v, g.currentColumn == "products", g.productsFilter != "")
	g.updateProductsView(v)

	// Details panel
	v, err = g.setView(gui, g.views.details, boxes.details, func(v *gocui.View) {
		v.Wrap = true
		v.SelBgColor = gocui.ColorDefault
	})
	if err != nil {
		return err
	}
	g.styleFrame(gui, v, g.currentColumn == "details", false)
	if g.currentColumn == "details" {
		v.Title = " " + icons.DETAILS_ICON + " Details (j/k scroll) "
	} else {
		v.Title = " " + icons.DETAILS_ICON + " Details "
	}
	g.updateDetailsView(v)
	v.SetOrigin(0, g.detailsScrollPos)

	// Commands panel (single row)
	v, err = g.setView(gui, g.views.commands, boxes.commands, func(v *gocui.View) {
		v.Title = " " + icons.COMMAND_ICON + " Commands "
		v.TitleColor = g.theme.InactiveBorderColor
		v.SelBgColor = gocui.ColorDefault
	})
	if err != nil {
		return err
	}
	g.updateCommandsView(v)

	// Help bar (bottom, full width)
	v, err = g.setView(gui, g.views.help, boxes.help, func(v *gocui.View) {
		v.Frame = false
		v.FgColor = g.theme.OptionsTextColor
		v.SelBgColor = gocui.ColorDefault
	})
	if err != nil {
		return err
	}
	g.updateHelpView(v)

	// Filters: left panel, or the sheet drawn over everything else
	if boxes.showFilters {
		v, err := g.setView(gui, g.views.filters, boxes.filters, nil)
		if err != nil {
			return err
		}
		g.styleFrame(gui, v, g.currentColumn == "filters", g.ctrl.HasActiveFilters())
		v.Title = " " + icons.FILTER_ICON + " Filters "
		if g.variant == variantOverlay {
			v.Title = " " + icons.FILTER_ICON + " Filters (f/Esc to close) "
			if _, err := gui.SetViewOnTop(g.views.filters); err != nil {
				return err
			}
		}
		g.updateFiltersView(v)
	} else {
		gui.DeleteView(g.views.filters)
	}

	// Help modal (keyboard shortcuts)
	if g.helpOpen {
		modalWidth := 54
		modalHeight := 26
		if modalHeight > maxY-4 {
			modalHeight = maxY - 4
		}
		modalX := (maxX - modalWidth) / 2
		modalY := (maxY - modalHeight) / 2

		if v, err := gui.SetView(g.views.helpModal, modalX, modalY, modalX+modalWidth, modalY+modalHeight, 0); err != nil {
			if !errors.Is(err, gocui.ErrUnknownView) {
				return err
			}
			v.Title = " " + icons.KEYBOARD_ICON + " Keyboard Shortcuts "
			v.TitleColor = g.theme.ActiveBorderColor
			v.FrameColor = g.theme.ActiveBorderColor
			v.FrameRunes = g.roundedFrameRunes
			v.SelBgColor = g.theme.SelectedLineBgColor
			v.SelFgColor = gocui.ColorDefault
		}

		if v, err := gui.View(g.views.helpModal); err == nil {
			g.renderHelpContent(v)
			if _, err := gui.SetCurrentView(g.views.helpModal); err != nil {
				return fmt.Errorf("failed to set help view: %w", err)
			}
		}

		return nil
	} else {
		gui.DeleteView(g.views.helpModal)
	}

	// Modal (centered popup for command logs)
	if g.modalOpen {
		modalWidth := maxX - 10
		modalHeight := 15
		if modalHeight > maxY-6 {
			modalHeight = maxY - 6
		}
		modalX := (maxX - modalWidth) / 2
		modalY := (maxY - modalHeight) / 2

		if v, err := gui.SetView(g.views.modal, modalX, modalY, modalX+modalWidth, modalY+modalHeight, 0); err != nil {
			if !errors.Is(err, gocui.ErrUnknownView) {
				return err
			}
			v.Title = " Command Log "
			v.BgColor = gocui.ColorDefault
			v.FgColor = gocui.ColorDefault
			v.SelBgColor = gocui.ColorDefault
			v.SelFgColor = gocui.ColorDefault
			v.Wrap = true
		}

		if v, err := gui.View(g.views.modal); err == nil {
			g.renderCommandLog(v)
			if _, err := gui.SetCurrentView(g.views.modal); err != nil {
				return fmt.Errorf("failed to set modal view: %w", err)
			}
		}

		return nil
	} else {
		// Delete modal if it exists
		gui.DeleteView(g.views.modal)
	}

	// Price editor modal
	if g.priceEditorOpen {
		return g.layoutPriceEditor(gui, maxX, maxY)
	}
	gui.DeleteView(g.views.priceInput)
	gui.DeleteView(g.views.priceModal)
	gui.Cursor = false

	// Set current view
	viewName := g.views.products
	switch g.currentColumn {
	case "filters":
		if boxes.showFilters {
			viewName = g.views.filters
		}
	case "details":
		viewName = g.views.details
	}
	if _, err := gui.SetCurrentView(viewName); err != nil {
		return fmt.Errorf("failed to set current view '%s': %w", viewName, err)
	}

	return nil
}

func (g *Gui) updateFiltersView(v *gocui.View) {
	v.Clear()
	v.Highlight = g.currentColumn == "filters"

	if g.ctrl.HasActiveFilters() {
		v.Footer = fmt.Sprintf("%d active", g.ctrl.ActiveCount())
	} else {
		v.Footer = ""
	}

	width, _ := v.Size()
	lines := g.pane.Lines(g.theme, g.config.UI.Currency, width)
	fmt.Fprint(v, strings.Join(lines, "\n"))
	v.FocusPoint(0, g.pane.cursor)
}

func (g *Gui) updateTriggerView(v *gocui.View) {
	v.Clear()

	color := "\033[0m"
	if g.ctrl.HasActiveFilters() {
		color = g.theme.GetChipAnsiCode()
	}
	action := "open"
	if g.overlayOpen {
		action = "close"
	}
	fmt.Fprintf(v, " %s%s %s\033[0m  \033[90m(f to %s)\033[0m", color, icons.SLIDERS_ICON, triggerLabel(g.ctrl), action)
}

func (g *Gui) updateProductsView(v *gocui.View) {
	v.Clear()

	// Show loading indicator while the first product list is computed
	if g.productsLoading && len(g.products) == 0 {
		v.Highlight = false
		v.Footer = ""
		fmt.Fprint(v, g.getLoadingText("Loading products..."))
		return
	}

	filtered, searchErr := g.getFilteredProducts()

	// Enable highlight when this view is focused
	v.Highlight = g.currentColumn == "products" && len(filtered) > 0

	hasSearch := g.productsFilter != "" || g.filterInputActive
	switch {
	case searchErr != nil:
		v.Footer = "invalid query"
	case hasSearch:
		v.Footer = fmt.Sprintf("%d/%d matched", len(filtered), len(g.products))
	case len(filtered) > 0:
		v.Footer = fmt.Sprintf("%d of %d", g.selectedProduct+1, len(filtered))
	default:
		v.Footer = "0 of 0"
	}

	if searchErr != nil {
		fmt.Fprintf(v, "\033[31m%v\033[0m", searchErr)
		return
	}
	if len(filtered) == 0 {
		fmt.Fprintln(v, "\033[90m  No products match the current filters\033[0m")
		if g.ctrl.HasActiveFilters() {
			fmt.Fprintln(v, "\033[90m  Press x to clear all filters\033[0m")
		}
		return
	}

	for _, p := range filtered {
		fmt.Fprintln(v, formatProductLine(p, g.config.UI.Currency))
	}

	// Clamp selection to filtered list
	if g.selectedProduct >= len(filtered) {
		g.selectedProduct = len(filtered) - 1
	}
	v.FocusPoint(0, g.selectedProduct)
}

func formatProductLine(p catalog.Product, currency string) string {
	icon := icons.PRODUCT_ICON
	if icon != "" {
		icon = icon + " "
	}
	return fmt.Sprintf("%s%-28s \033[90m%-10s\033[0m %6s / %-5s \033[33m%12s\033[0m",
		icon, truncate(p.Name, 28), truncate(p.Brand, 10), p.Storage, p.RAM, formatPrice(currency, p.Price))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func (g *Gui) currentProduct() (catalog.Product, bool) {
	filtered, err := g.getFilteredProducts()
	if err != nil || g.selectedProduct >= len(filtered) || g.selectedProduct < 0 {
		return catalog.Product{}, false
	}
	return filtered[g.selectedProduct], true
}

// detailsContent renders the selected product and the combined filter.
func (g *Gui) detailsContent() string {
	var content strings.Builder

	if p, ok := g.currentProduct(); ok {
		content.WriteString(fmt.Sprintf("\033[36m─── %s ───\033[0m\n\n", p.Name))
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			content.WriteString(fmt.Sprintf("Error formatting data: %v\n", err))
		} else {
			content.WriteString(colorizeJSON(string(data)))
			content.WriteString("\n\n")
		}
	}

	content.WriteString("\033[36m─── Combined Filter ───\033[0m\n\n")
	data, err := json.MarshalIndent(g.ctrl.Filter(), "", "  ")
	if err != nil {
		content.WriteString(fmt.Sprintf("Error formatting data: %v\n", err))
	} else {
		content.WriteString(colorizeJSON(string(data)))
		content.WriteString("\n")
	}
	return content.String()
}

func (g *Gui) updateDetailsView(v *gocui.View) {
	v.SetContent(g.detailsContent())
}

func (g *Gui) updateCommandsView(v *gocui.View) {
	v.Clear()

	if len(g.commandHistory) == 0 {
		return
	}

	// Show last command
	cmd := g.commandHistory[len(g.commandHistory)-1]

	var statusIcon, statusColor string
	switch cmd.Status {
	case "running":
		statusIcon = icons.LOADING
		statusColor = "\033[33m" // Yellow
	case "error":
		statusIcon = icons.ERROR
		statusColor = "\033[31m" // Red
	case "success":
		statusIcon = icons.SUCCESS
		statusColor = "\033[32m" // Green
	default:
		statusIcon = "•"
		statusColor = "\033[0m"
	}

	fmt.Fprintf(v, "%s%s %s\033[0m %s",
		statusColor,
		statusIcon,
		cmd.Command,
		cmd.Description)
}

func (g *Gui) renderCommandLog(v *gocui.View) {
	v.Clear()
	if len(g.commandHistory) == 0 {
		fmt.Fprintln(v, "  No commands yet")
	} else {
		for _, cmd := range g.commandHistory {
			statusColor := "\033[32m" // Green
			switch cmd.Status {
			case "error":
				statusColor = "\033[31m" // Red
			case "running":
				statusColor = "\033[33m" // Yellow
			}
			fmt.Fprintf(v, "  [%s] %s%s\033[0m: %s\n", cmd.Timestamp, statusColor, cmd.Command, cmd.Description)
		}
	}
	fmt.Fprintln(v, "")
	fmt.Fprintln(v, "  \033[36mPress Esc or @ to close\033[0m")
}

var ansiPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// visibleWidth is the number of terminal cells s occupies, ignoring colour codes.
func visibleWidth(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}

// helpText returns the hint line for the current context.
func (g *Gui) helpText() string {
	switch {
	case g.filterInputActive:
		beforeCursor := g.filterInputText[:g.filterCursorPos]
		afterCursor := g.filterInputText[g.filterCursorPos:]
		// Cursor shown as reverse video - highlight char at cursor or space if at end
		var cursorChar, rest string
		if len(afterCursor) > 0 {
			cursorChar = string(afterCursor[0])
			rest = afterCursor[1:]
		} else {
			cursorChar = " "
		}
		return fmt.Sprintf(" \033[33mSearch products:\033[0m %s\033[7m%s\033[0m%s  \033[90m(Enter to keep, Esc to cancel, . for jq)\033[0m", beforeCursor, cursorChar, rest)
	case g.priceEditorOpen && g.priceEditMode:
		return " \033[33mEditing price\033[0m  \033[90m(Enter to confirm, Esc to cancel, e.g. 20000, 20,000 or 20k)\033[0m"
	case g.priceEditorOpen:
		return " \033[36mj/k\033[0m rows  \033[33menter\033[0m edit/apply  \033[31mesc\033[0m close"
	case g.productsFilter != "":
		return fmt.Sprintf(" \033[33mProducts filtered:\033[0m '%s'  \033[90m(Esc to clear search)\033[0m", g.productsFilter)
	case g.currentColumn == "filters":
		return " \033[36mj/k\033[0m move  \033[33mspace\033[0m toggle  \033[32m[ ]\033[0m low  \033[32m{ }\033[0m high  \033[32mp\033[0m price  \033[31mx\033[0m clear  \033[35m?\033[0m help  \033[31mq\033[0m quit"
	}
	return " \033[36m←/→\033[0m cols  \033[36mj/k\033[0m move  \033[33mf\033[0m filters  \033[31mx\033[0m clear  \033[35m/\033[0m search  \033[32mc\033[0m copy  \033[32ms\033[0m save  \033[35m?\033[0m help  \033[31mq\033[0m quit"
}

func (g *Gui) updateHelpView(v *gocui.View) {
	v.Clear()

	helpText := g.helpText()
	versionText := fmt.Sprintf("\033[90mv%s\033[0m ", g.version)

	// Right-align version
	width, _ := v.Size()
	padding := width - visibleWidth(helpText) - visibleWidth(versionText)
	if padding < 1 {
		padding = 1
	}

	fmt.Fprintf(v, "%s%*s%s", helpText, padding, "", versionText)
}

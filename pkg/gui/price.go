package gui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jesseduffield/gocui"
	"github.com/pkg/errors"
)

// Price editor row indices
const (
	priceRowLow = iota
	priceRowHigh
	priceRowApply
	priceRowReset
	priceRowCount
)

const (
	priceModalWidth  = 44
	priceModalHeight = 12
)

// openPriceEditor opens the price range modal with the current range.
func (g *Gui) openPriceEditor() error {
	if g.priceEditorOpen {
		return nil
	}
	pr := g.ctrl.Selection().PriceRange()
	g.priceEditorOpen = true
	g.priceRow = priceRowLow
	g.priceEditMode = false
	g.priceLowText = formatPriceInput(pr.Low)
	g.priceHighText = formatPriceInput(pr.High)
	g.priceError = ""
	g.logCommand("p", "Price editor opened", "success")
	return g.refresh()
}

// closePriceEditor closes the modal without applying buffered edits.
func (g *Gui) closePriceEditor() error {
	g.priceEditorOpen = false
	g.priceEditMode = false
	g.priceError = ""
	return g.refresh()
}

func (g *Gui) priceMoveUp() error {
	return g.priceMove(-1)
}

func (g *Gui) priceMoveDown() error {
	return g.priceMove(1)
}

func (g *Gui) priceMove(dir int) error {
	if g.priceEditMode {
		return nil
	}
	g.priceRow = (g.priceRow + dir + priceRowCount) % priceRowCount
	return g.refresh()
}

// priceActivate handles Enter and Space on the selected row.
func (g *Gui) priceActivate() error {
	switch g.priceRow {
	case priceRowLow, priceRowHigh:
		g.startPriceEdit()
		return g.refresh()
	case priceRowApply:
		return g.applyPrice()
	case priceRowReset:
		return g.resetPrice()
	}
	return nil
}

// startPriceEdit opens the input for the selected bound. The input view is
// recreated so it starts from the buffered text.
func (g *Gui) startPriceEdit() {
	g.priceEditMode = true
	g.priceError = ""
	if g.g != nil {
		g.g.DeleteView(g.views.priceInput)
	}
}

// priceInputEditor handles text input in the price input view.
func (g *Gui) priceInputEditor(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	switch key {
	case gocui.KeyEnter:
		g.commitPriceEdit(v.TextArea.GetContent())
		return true
	case gocui.KeyEsc:
		g.priceEditMode = false
		g.priceError = ""
		return true
	default:
		return gocui.DefaultEditor.Edit(v, key, ch, mod)
	}
}

// commitPriceEdit stores a valid entry in the row's buffer. An invalid entry
// keeps the input open with an error.
func (g *Gui) commitPriceEdit(content string) {
	v, err := parsePriceInput(content, g.config.UI.Currency)
	if err != nil {
		g.priceError = err.Error()
		return
	}
	switch g.priceRow {
	case priceRowLow:
		g.priceLowText = formatPriceInput(v)
	case priceRowHigh:
		g.priceHighText = formatPriceInput(v)
	}
	g.priceEditMode = false
	g.priceError = ""
}

// applyPrice sets both buffered bounds in one update and closes the modal.
func (g *Gui) applyPrice() error {
	low, err := parsePriceInput(g.priceLowText, g.config.UI.Currency)
	if err != nil {
		g.priceError = err.Error()
		return g.refresh()
	}
	high, err := parsePriceInput(g.priceHighText, g.config.UI.Currency)
	if err != nil {
		g.priceError = err.Error()
		return g.refresh()
	}

	g.ctrl.SetPriceRange(low, high)
	pr := g.ctrl.Selection().PriceRange()
	g.logCommand("p", fmt.Sprintf("Price %s - %s", formatPrice(g.config.UI.Currency, pr.Low), formatPrice(g.config.UI.Currency, pr.High)), "success")
	return g.closePriceEditor()
}

// resetPrice restores the full price bounds and closes the modal.
func (g *Gui) resetPrice() error {
	b := g.ctrl.Registry().Bounds
	g.ctrl.SetPriceRange(b.Min, b.Max)
	g.logCommand("p", "Price reset", "success")
	return g.closePriceEditor()
}

// parsePriceInput accepts plain amounts as well as "20,000", "₦20000" and
// "20k" or "1.5m".
func parsePriceInput(s, currency string) (float64, error) {
	t := strings.TrimSpace(s)
	if currency != "" {
		t = strings.TrimPrefix(t, currency)
	}
	t = strings.NewReplacer(",", "", "_", "", " ", "").Replace(t)
	t = strings.ToLower(t)
	if t == "" {
		return 0, errors.New("enter an amount")
	}

	mult := 1.0
	switch {
	case strings.HasSuffix(t, "k"):
		mult, t = 1e3, strings.TrimSuffix(t, "k")
	case strings.HasSuffix(t, "m"):
		mult, t = 1e6, strings.TrimSuffix(t, "m")
	}

	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("%q is not an amount", strings.TrimSpace(s))
	}
	return v * mult, nil
}

func formatPriceInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// layoutPriceEditor draws the modal and, while a bound is being edited, the
// input over it.
func (g *Gui) layoutPriceEditor(gui *gocui.Gui, maxX, maxY int) error {
	width, height := priceModalWidth, priceModalHeight
	if width > maxX-2 {
		width = maxX - 2
	}
	if height > maxY-2 {
		height = maxY - 2
	}
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	v, err := gui.SetView(g.views.priceModal, x0, y0, x0+width, y0+height, 0)
	if err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = " Price range "
		v.TitleColor = g.theme.ActiveBorderColor
		v.FrameColor = g.theme.ActiveBorderColor
		v.FrameRunes = g.roundedFrameRunes
		v.BgColor = gocui.ColorDefault
		v.FgColor = gocui.ColorDefault
	}
	if _, err := gui.SetViewOnTop(g.views.priceModal); err != nil {
		return err
	}
	g.renderPriceEditor(v)

	if !g.priceEditMode {
		gui.DeleteView(g.views.priceInput)
		gui.Cursor = false
		if _, err := gui.SetCurrentView(g.views.priceModal); err != nil {
			return errors.Wrap(err, "failed to set price view")
		}
		return nil
	}

	iy := y0 + 2 + g.priceRow*2
	in, err := gui.SetView(g.views.priceInput, x0+12, iy-1, x0+width-2, iy+1, 0)
	if err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		in.Editable = true
		in.Editor = gocui.EditorFunc(g.priceInputEditor)
		in.FrameRunes = g.roundedFrameRunes
		in.FrameColor = g.theme.FilterBorderColor
		in.BgColor = gocui.ColorDefault
		in.FgColor = gocui.ColorDefault
		text := g.priceLowText
		if g.priceRow == priceRowHigh {
			text = g.priceHighText
		}
		in.TextArea.TypeString(text)
		in.RenderTextArea()
	}
	if _, err := gui.SetViewOnTop(g.views.priceInput); err != nil {
		return err
	}
	gui.Cursor = true
	if _, err := gui.SetCurrentView(g.views.priceInput); err != nil {
		return errors.Wrap(err, "failed to set price input view")
	}
	return nil
}

// renderPriceEditor renders the price modal body.
func (g *Gui) renderPriceEditor(v *gocui.View) {
	v.Clear()

	activeColor := g.getActiveColorCode()
	resetColor := "\033[0m"
	dimColor := "\033[90m"
	highlightBg := g.theme.GetSelectedBgAnsiCode()
	currency := g.config.UI.Currency
	b := g.ctrl.Registry().Bounds

	field := func(row int, label, text string) {
		value := currency + text
		if g.priceRow == row && !g.priceEditMode {
			label = fmt.Sprintf("%s%s%s", activeColor, label, resetColor)
			value = fmt.Sprintf("%s %s %s", highlightBg, value, resetColor)
		}
		fmt.Fprintf(v, " %s  %s\n\n", label, value)
	}

	fmt.Fprintln(v)
	field(priceRowLow, "Min price:", g.priceLowText)
	field(priceRowHigh, "Max price:", g.priceHighText)

	applyBtn := "Apply"
	resetBtn := "Reset"
	switch {
	case g.priceEditMode:
	case g.priceRow == priceRowApply:
		applyBtn = fmt.Sprintf("%s Apply %s", highlightBg, resetColor)
	case g.priceRow == priceRowReset:
		resetBtn = fmt.Sprintf("%s Reset %s", highlightBg, resetColor)
	}
	fmt.Fprintf(v, " [ %s ]\n\n", applyBtn)
	fmt.Fprintf(v, " [ %s ]\n", resetBtn)

	if g.priceError != "" {
		fmt.Fprintf(v, " \033[31m%s%s\n", g.priceError, resetColor)
	} else {
		fmt.Fprintf(v, " %sRange %s - %s%s\n", dimColor, formatPrice(currency, b.Min), formatPrice(currency, b.Max), resetColor)
	}
	if g.priceEditMode {
		fmt.Fprintf(v, "%s Enter: confirm  Esc: cancel%s", dimColor, resetColor)
	} else {
		fmt.Fprintf(v, "%s j/k: rows  Enter: edit  Esc: close%s", dimColor, resetColor)
	}
}

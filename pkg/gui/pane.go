package gui

import (
	"fmt"
	"math"
	"strings"

	"github.com/marjoballabani/lazyshop/pkg/filter"
	"github.com/marjoballabani/lazyshop/pkg/gui/icons"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type rowKind int

const (
	rowChipsHeader rowKind = iota
	rowChip
	rowClearAll
	rowBlank
	rowSection
	rowOption
	rowPriceSlider
	rowPriceLabels
	rowEmpty
)

// paneRow is one line of the filter pane.
type paneRow struct {
	kind    rowKind
	section filter.Section
	value   string
	label   string
	chip    filter.Chip
}

func (r paneRow) selectable() bool {
	switch r.kind {
	case rowChip, rowClearAll, rowSection, rowOption, rowPriceSlider:
		return true
	}
	return false
}

// key identifies a row across rebuilds so the cursor can follow it.
func (r paneRow) key() string {
	return fmt.Sprintf("%d/%s/%s", r.kind, r.section, r.value)
}

// filterPane renders a Controller as a list of rows and tracks a cursor over
// them. The panel and the overlay sheet share one pane.
type filterPane struct {
	ctrl   *filter.Controller
	cursor int
	anchor string
}

func newFilterPane(ctrl *filter.Controller) *filterPane {
	p := &filterPane{ctrl: ctrl}
	p.sync(p.rows())
	return p
}

func (p *filterPane) rows() []paneRow {
	var rows []paneRow

	if p.ctrl.HasActiveFilters() {
		rows = append(rows, paneRow{kind: rowChipsHeader, label: "Active Filters"})
		for _, chip := range p.ctrl.Chips() {
			rows = append(rows, paneRow{
				kind:    rowChip,
				section: chip.Section,
				value:   chip.Value,
				label:   chip.Label,
				chip:    chip,
			})
		}
		rows = append(rows, paneRow{kind: rowClearAll, label: "Clear All"})
		rows = append(rows, paneRow{kind: rowBlank})
	}

	reg := p.ctrl.Registry()
	for _, sec := range filter.Sections {
		rows = append(rows, paneRow{kind: rowSection, section: sec, label: sec.Title()})
		if !p.ctrl.Expanded(sec) {
			continue
		}

		switch sec {
		case filter.SectionBrands:
			if len(reg.Brands) == 0 {
				rows = append(rows, paneRow{kind: rowEmpty, section: sec, label: "No brands available"})
			}
			for _, b := range reg.Brands {
				rows = append(rows, paneRow{kind: rowOption, section: sec, value: b.ID, label: b.DisplayName})
			}
		case filter.SectionPrice:
			rows = append(rows,
				paneRow{kind: rowPriceSlider, section: sec},
				paneRow{kind: rowPriceLabels, section: sec})
		default:
			opts := reg.Options(sec)
			if len(opts) == 0 {
				rows = append(rows, paneRow{kind: rowEmpty, section: sec, label: "No options"})
			}
			for _, o := range opts {
				rows = append(rows, paneRow{kind: rowOption, section: sec, value: o, label: o})
			}
		}
	}
	return rows
}

// sync places the cursor on the anchored row, or on the nearest selectable
// row when the anchor is gone.
func (p *filterPane) sync(rows []paneRow) {
	if len(rows) == 0 {
		p.cursor, p.anchor = 0, ""
		return
	}
	for i, r := range rows {
		if p.anchor != "" && r.key() == p.anchor {
			p.cursor = i
			return
		}
	}

	if p.cursor >= len(rows) {
		p.cursor = len(rows) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	if !rows[p.cursor].selectable() {
		if i := nextSelectable(rows, p.cursor, 1); i != p.cursor {
			p.cursor = i
		} else {
			p.cursor = nextSelectable(rows, p.cursor, -1)
		}
	}
	p.anchor = rows[p.cursor].key()
}

func nextSelectable(rows []paneRow, from, dir int) int {
	for i := from + dir; i >= 0 && i < len(rows); i += dir {
		if rows[i].selectable() {
			return i
		}
	}
	return from
}

func (p *filterPane) move(dir int) {
	rows := p.rows()
	p.sync(rows)
	if len(rows) == 0 {
		return
	}
	p.cursor = nextSelectable(rows, p.cursor, dir)
	p.anchor = rows[p.cursor].key()
}

func (p *filterPane) MoveUp()   { p.move(-1) }
func (p *filterPane) MoveDown() { p.move(1) }

// Selected returns the row under the cursor.
func (p *filterPane) Selected() (paneRow, bool) {
	rows := p.rows()
	p.sync(rows)
	if p.cursor >= len(rows) {
		return paneRow{}, false
	}
	return rows[p.cursor], true
}

// Select moves the cursor to line if that row can be selected.
func (p *filterPane) Select(line int) bool {
	rows := p.rows()
	if line < 0 || line >= len(rows) || !rows[line].selectable() {
		return false
	}
	p.cursor = line
	p.anchor = rows[line].key()
	return true
}

// Activate performs the row's action on the controller. It reports true when
// the row is the price slider, which the caller handles with the editor.
func (p *filterPane) Activate() bool {
	row, ok := p.Selected()
	if !ok {
		return false
	}

	switch row.kind {
	case rowChip:
		p.ctrl.RemoveChip(row.chip)
	case rowClearAll:
		p.ctrl.ClearAll()
	case rowSection:
		p.ctrl.ToggleSection(row.section)
	case rowOption:
		p.ctrl.Toggle(row.section, row.value)
	case rowPriceSlider:
		return true
	}
	p.sync(p.rows())
	return false
}

// Lines renders every row for a view of the given inner width.
func (p *filterPane) Lines(theme *Theme, currency string, width int) []string {
	rows := p.rows()
	p.sync(rows)

	sel := p.ctrl.Selection()
	reg := p.ctrl.Registry()
	chip := theme.GetChipAnsiCode()
	active := theme.GetAnsiColorCode()

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		var line string
		switch r.kind {
		case rowChipsHeader:
			line = fmt.Sprintf("\033[90m%s (%d)\033[0m", r.label, p.ctrl.ActiveCount())
		case rowChip:
			label := r.label
			if r.section == filter.SectionPrice {
				pr := sel.PriceRange()
				label = fmt.Sprintf("%s - %s", formatPrice(currency, pr.Low), formatPrice(currency, pr.High))
			}
			line = fmt.Sprintf("  %s%s %s\033[0m", chip, label, icons.CHIP_REMOVE)
		case rowClearAll:
			line = fmt.Sprintf("  \033[31m%s\033[0m", r.label)
		case rowSection:
			chevron := icons.CHEVRON_DOWN
			if p.ctrl.Expanded(r.section) {
				chevron = icons.CHEVRON_UP
			}
			line = fmt.Sprintf("%s\033[1m%s\033[0m %s", active, r.label, chevron)
		case rowOption:
			line = renderOption(r, sel.Has(r.section, r.value), chip)
		case rowPriceSlider:
			pr := sel.PriceRange()
			line = "  " + sliderBar(pr.Low, pr.High, reg.Bounds, width-4, chip)
		case rowPriceLabels:
			pr := sel.PriceRange()
			line = fmt.Sprintf("  \033[90m%s - %s\033[0m", formatPrice(currency, pr.Low), formatPrice(currency, pr.High))
		case rowEmpty:
			line = fmt.Sprintf("  \033[90m%s\033[0m", r.label)
		}
		lines = append(lines, line)
	}
	return lines
}

func renderOption(r paneRow, selected bool, chip string) string {
	if r.section == filter.SectionBrands {
		if selected {
			return fmt.Sprintf("  %s%s %s\033[0m", chip, icons.CHECKBOX_ON, r.label)
		}
		return fmt.Sprintf("  %s %s", icons.CHECKBOX_OFF, r.label)
	}
	// storage and RAM render as toggle buttons
	if selected {
		return fmt.Sprintf("  %s\033[7m %s \033[0m", chip, r.label)
	}
	return fmt.Sprintf("  [%s]", r.label)
}

var pricePrinter = message.NewPrinter(language.English)

// formatPrice renders a whole-currency amount with thousands separators.
func formatPrice(currency string, v float64) string {
	return currency + pricePrinter.Sprintf("%d", int64(math.Round(v)))
}

// sliderPositions maps a range onto cell indexes of a track width cells wide.
func sliderPositions(low, high float64, b filter.PriceBounds, width int) (int, int) {
	if width < 2 {
		return 0, 0
	}
	span := b.Max - b.Min
	if span <= 0 {
		return 0, width - 1
	}
	pos := func(v float64) int {
		return int(math.Round((v - b.Min) / span * float64(width-1)))
	}
	return pos(low), pos(high)
}

// sliderBar draws a two-handle track. The part between the handles is
// coloured with color.
func sliderBar(low, high float64, b filter.PriceBounds, width int, color string) string {
	if width < 2 {
		width = 2
	}
	lo, hi := sliderPositions(low, high, b, width)

	var sb strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == lo || i == hi:
			sb.WriteString(color + icons.SLIDER_HANDLE + "\033[0m")
		case i > lo && i < hi:
			sb.WriteString(color + "━" + "\033[0m")
		default:
			sb.WriteString("\033[90m─\033[0m")
		}
	}
	return sb.String()
}

// triggerLabel is the text of the overlay trigger. The count is shown only
// while some filter is active.
func triggerLabel(ctrl *filter.Controller) string {
	if !ctrl.HasActiveFilters() {
		return "Filters"
	}
	return fmt.Sprintf("Filters (%d)", ctrl.ActiveCount())
}

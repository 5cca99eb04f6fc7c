package gui

import (
	"fmt"

	"github.com/jesseduffield/gocui"
)

// PopupItem is one row of a popup. Headers are section titles and cannot
// be selected; items without an Action are shown dimmed.
type PopupItem struct {
	Key      string
	Label    string
	IsHeader bool
	Action   func() error
}

// Popup is a list of items with one selected row, drawn in a modal view.
type Popup struct {
	Title       string
	Items       []PopupItem
	SelectedIdx int
	Theme       *Theme
}

func NewPopup(title string, items []PopupItem, theme *Theme) *Popup {
	p := &Popup{Title: title, Items: items, Theme: theme, SelectedIdx: -1}
	p.step(1)
	return p
}

func (p *Popup) selectable(i int) bool {
	return i >= 0 && i < len(p.Items) && !p.Items[i].IsHeader
}

// step moves to the nearest selectable item in dir, staying put at the ends.
func (p *Popup) step(dir int) {
	for i := p.SelectedIdx + dir; i >= 0 && i < len(p.Items); i += dir {
		if p.selectable(i) {
			p.SelectedIdx = i
			return
		}
	}
}

func (p *Popup) MoveUp()   { p.step(-1) }
func (p *Popup) MoveDown() { p.step(1) }

// Select moves the selection to idx when it is a selectable item.
func (p *Popup) Select(idx int) bool {
	if !p.selectable(idx) {
		return false
	}
	p.SelectedIdx = idx
	return true
}

func (p *Popup) GetSelectedItem() *PopupItem {
	if !p.selectable(p.SelectedIdx) {
		return nil
	}
	return &p.Items[p.SelectedIdx]
}

func (p *Popup) SelectableCount() int {
	n := 0
	for i := range p.Items {
		if p.selectable(i) {
			n++
		}
	}
	return n
}

// Lines returns the rendered items followed by a blank line and the footer.
func (p *Popup) Lines() []string {
	const (
		key   = "\033[33m"
		dim   = "\033[90m"
		reset = "\033[0m"
	)
	lines := make([]string, 0, len(p.Items)+2)
	for _, item := range p.Items {
		var line string
		switch {
		case item.IsHeader:
			line = fmt.Sprintf("%s ─── %s ───%s", p.Theme.GetAnsiColorCode(), item.Label, reset)
		case item.Action == nil:
			line = fmt.Sprintf("  %s%-12s%s %s%s%s", key, item.Key, reset, dim, item.Label, reset)
		default:
			line = fmt.Sprintf("  %s%-12s%s %s", key, item.Key, reset, item.Label)
		}
		lines = append(lines, line)
	}
	return append(lines, "", dim+"  Enter to run · Esc to close"+reset)
}

// Render writes the popup into v and highlights the selected row.
func (p *Popup) Render(v *gocui.View) {
	v.Clear()
	v.Highlight = true
	v.SelBgColor = p.Theme.SelectedLineBgColor
	v.SelFgColor = gocui.ColorDefault
	for _, line := range p.Lines() {
		fmt.Fprintln(v, line)
	}
	v.FocusPoint(0, p.SelectedIdx)
}

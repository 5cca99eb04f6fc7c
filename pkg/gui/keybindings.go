package gui

import "github.com/jesseduffield/gocui"

func (g *Gui) setKeybindings() error {
	return g.newKeybindingManagerWithBindings().Apply()
}

func (g *Gui) newKeybindingManagerWithBindings() *KeybindingManager {
	km := g.newKeybindingManager()

	// Define all bindings
	km.RegisterAll(g.globalBindings(km))
	km.RegisterAll(g.navigationBindings(km))
	km.RegisterAll(g.filterStateBindings(km))
	km.RegisterAll(g.searchBindings(km))
	km.RegisterAll(g.actionBindings(km))
	km.RegisterAll(g.mouseBindings())

	return km
}

// globalBindings - always available (quit, escape, help)
func (g *Gui) globalBindings(km *KeybindingManager) []*Binding {
	return []*Binding{
		{
			Key:         gocui.KeyCtrlC,
			Handler:     g.doQuit,
			Description: "Force quit",
		},
		{
			Key:         'q',
			Handler:     g.doQuit,
			Description: "Quit",
			Contexts: map[Context]func() error{
				ContextFilter: g.filterInsert('q'),
				ContextHelp:   g.blockAction,
				ContextModal:  g.blockAction,
				ContextPrice:  g.blockAction,
			},
		},
		{
			Key:         gocui.KeyEsc,
			Handler:     g.doEscape,
			Description: "Close/Cancel",
		},
		{
			Key:         '?',
			Handler:     g.doToggleHelp,
			Description: "Show help",
			Contexts: map[Context]func() error{
				ContextFilter: g.filterInsert('?'),
				ContextPrice:  g.blockAction,
			},
		},
		{
			Key:         '@',
			Handler:     g.doToggleModal,
			Description: "Command log",
			Contexts: map[Context]func() error{
				ContextFilter: g.filterInsert('@'),
				ContextPrice:  g.blockAction,
			},
		},
	}
}

// navigationBindings - panel and list navigation
func (g *Gui) navigationBindings(km *KeybindingManager) []*Binding {
	up := map[Context]func() error{
		ContextHelp:  g.helpMoveUp,
		ContextModal: g.blockAction,
		ContextPrice: g.priceMoveUp,
	}
	down := map[Context]func() error{
		ContextHelp:  g.helpMoveDown,
		ContextModal: g.blockAction,
		ContextPrice: g.priceMoveDown,
	}
	blocked := func(filter func() error) map[Context]func() error {
		return map[Context]func() error{
			ContextFilter: filter,
			ContextHelp:   g.blockAction,
			ContextModal:  g.blockAction,
			ContextPrice:  g.blockAction,
		}
	}
	withFilter := func(m map[Context]func() error, filter func() error) map[Context]func() error {
		out := map[Context]func() error{ContextFilter: filter}
		for k, v := range m {
			out[k] = v
		}
		return out
	}

	return []*Binding{
		// Arrow up/down - context aware
		{Key: gocui.KeyArrowUp, Handler: g.doCursorUp, Description: "Move up", Contexts: up},
		{Key: gocui.KeyArrowDown, Handler: g.doCursorDown, Description: "Move down", Contexts: down},
		// Arrow left/right - context aware
		{Key: gocui.KeyArrowLeft, Handler: g.doColumnLeft, Description: "Move left", Contexts: blocked(g.filterCursorLeft)},
		{Key: gocui.KeyArrowRight, Handler: g.doColumnRight, Description: "Move right", Contexts: blocked(g.filterCursorRight)},
		// Vim keys - context aware
		{Key: 'j', Handler: g.doCursorDown, Description: "Move down", Contexts: withFilter(down, g.filterInsert('j'))},
		{Key: 'k', Handler: g.doCursorUp, Description: "Move up", Contexts: withFilter(up, g.filterInsert('k'))},
		{Key: 'h', Handler: g.doColumnLeft, Description: "Move left", Contexts: blocked(g.filterInsert('h'))},
		{Key: 'l', Handler: g.doColumnRight, Description: "Move right", Contexts: blocked(g.filterInsert('l'))},
		// Tab
		{Key: gocui.KeyTab, Handler: g.doNextColumn, Description: "Next panel", Contexts: blocked(g.blockAction)},
		// Space - context aware
		{
			Key:         gocui.KeySpace,
			Handler:     g.doSpace,
			Description: "Toggle/Select",
			Contexts: map[Context]func() error{
				ContextFilter: g.filterInsert(' '),
				ContextHelp:   g.blockAction,
				ContextModal:  g.blockAction,
				ContextPrice:  g.priceActivate,
			},
		},
		// Enter - context aware
		{
			Key:         gocui.KeyEnter,
			Handler:     g.doEnter,
			Description: "Confirm/Details",
			Contexts: map[Context]func() error{
				ContextFilter: g.commitSearch,
				ContextHelp:   g.helpClose,
				ContextModal:  g.blockAction,
				ContextPrice:  g.priceActivate,
			},
		},
	}
}

// filterStateBindings - drive the filter controller from anywhere in the UI
func (g *Gui) filterStateBindings(km *KeybindingManager) []*Binding {
	inactive := func(ch rune) map[Context]func() error {
		return map[Context]func() error{
			ContextFilter: g.filterInsert(ch),
			ContextHelp:   g.blockAction,
			ContextModal:  g.blockAction,
			ContextPrice:  g.blockAction,
		}
	}

	return []*Binding{
		{
			Key:         'f',
			Handler:     g.doToggleOverlay,
			Description: "Filters",
			Contexts:    inactive('f'),
		},
		{
			Key:               'x',
			Handler:           g.doClearAll,
			Description:       "Clear all",
			Contexts:          inactive('x'),
			GetDisabledReason: require(km.disabled.PopupOpen, km.disabled.NoFilters),
		},
		{
			Key:         'p',
			Handler:     g.openPriceEditor,
			Description: "Price",
			Contexts:    inactive('p'),
		},
		{
			Key:               '[',
			Handler:           g.nudge(-1, 0),
			Description:       "Lower min price",
			Contexts:          inactive('['),
			GetDisabledReason: km.disabled.OverlayClosed,
		},
		{
			Key:               ']',
			Handler:           g.nudge(1, 0),
			Description:       "Raise min price",
			Contexts:          inactive(']'),
			GetDisabledReason: km.disabled.OverlayClosed,
		},
		{
			Key:               '{',
			Handler:           g.nudge(0, -1),
			Description:       "Lower max price",
			Contexts:          inactive('{'),
			GetDisabledReason: km.disabled.OverlayClosed,
		},
		{
			Key:               '}',
			Handler:           g.nudge(0, 1),
			Description:       "Raise max price",
			Contexts:          inactive('}'),
			GetDisabledReason: km.disabled.OverlayClosed,
		},
	}
}

// searchBindings - product search input
func (g *Gui) searchBindings(km *KeybindingManager) []*Binding {
	bindings := []*Binding{
		{
			Key:         '/',
			Handler:     g.startSearch,
			Description: "Search products",
			Contexts: map[Context]func() error{
				ContextFilter: g.filterInsert('/'),
				ContextHelp:   g.blockAction,
				ContextModal:  g.blockAction,
				ContextPrice:  g.blockAction,
			},
		},
		{
			Key:     gocui.KeyBackspace,
			Handler: g.doFilterBackspace,
		},
		{
			Key:     gocui.KeyBackspace2,
			Handler: g.doFilterBackspace,
		},
	}

	// Character handlers for search input (includes jq syntax chars)
	// Exclude chars that have dedicated context-aware bindings: hjkl, cfpqrsx, ?@/ and []{}
	filterChars := "abdegimnotuvwyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	filterChars += "-_."
	filterChars += "|():\"'`,<>=!+*^$#~;&%\\"
	for _, ch := range filterChars {
		bindings = append(bindings, &Binding{
			Key:     ch,
			Handler: g.makeFilterCharAction(ch),
		})
	}

	return bindings
}

// actionBindings - export and reload
func (g *Gui) actionBindings(km *KeybindingManager) []*Binding {
	inactive := func(ch rune) map[Context]func() error {
		return map[Context]func() error{
			ContextFilter: g.filterInsert(ch),
			ContextHelp:   g.blockAction,
			ContextModal:  g.blockAction,
			ContextPrice:  g.blockAction,
		}
	}

	return []*Binding{
		{
			Key:         'c',
			Handler:     g.doCopyJSON,
			Description: "Copy filter JSON",
			Contexts:    inactive('c'),
		},
		{
			Key:         's',
			Handler:     g.doSaveJSON,
			Description: "Save filter JSON",
			Contexts:    inactive('s'),
		},
		{
			Key:         'r',
			Handler:     g.doReload,
			Description: "Reload catalog",
			Contexts:    inactive('r'),
		},
	}
}

// mouseBindings - click handlers
func (g *Gui) mouseBindings() []*Binding {
	return []*Binding{
		{Key: gocui.MouseLeft, ViewName: "helpModal", Handler: g.doHelpClick},
		{Key: gocui.MouseLeft, ViewName: "filters", Handler: g.doFiltersClick},
		{Key: gocui.MouseLeft, ViewName: "trigger", Handler: g.doToggleOverlay},
		{Key: gocui.MouseLeft, ViewName: "products", Handler: g.doProductsClick},
		{Key: gocui.MouseLeft, ViewName: "details", Handler: g.doDetailsClick},
		{Key: gocui.MouseLeft, ViewName: "commands", Handler: g.doOutsideClick},
		{Key: gocui.MouseLeft, ViewName: "help", Handler: g.doOutsideClick},
		{Key: gocui.MouseLeft, ViewName: "background", Handler: g.doOutsideClick},
	}
}

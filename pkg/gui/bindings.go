package gui

import (
	"github.com/jesseduffield/gocui"
	"github.com/pkg/errors"
)

// Context is the input mode that decides which handler a key reaches.
type Context string

const (
	ContextNormal Context = "normal"
	ContextFilter Context = "filter" // typing a product search
	ContextHelp   Context = "help"
	ContextModal  Context = "modal"
	ContextPrice  Context = "price"
)

// getContext resolves the active context. Popups stack, so the topmost wins.
func (g *Gui) getContext() Context {
	switch {
	case g.helpOpen:
		return ContextHelp
	case g.modalOpen:
		return ContextModal
	case g.priceEditorOpen:
		return ContextPrice
	case g.filterInputActive:
		return ContextFilter
	}
	return ContextNormal
}

// Binding ties a key to a handler. Contexts overrides Handler while that
// context is active; GetDisabledReason turns the key into a logged no-op.
type Binding struct {
	Key               interface{} // gocui.Key or rune
	Modifier          gocui.Modifier
	ViewName          string // "" binds globally
	Handler           func() error
	Description       string
	GetDisabledReason func() string
	Contexts          map[Context]func() error
}

// DisabledReasons are the guards shared between bindings.
type DisabledReasons struct {
	PopupOpen     func() string
	NoFilters     func() string
	OverlayClosed func() string
}

func reasonIf(cond func() bool, reason string) func() string {
	return func() string {
		if cond() {
			return reason
		}
		return ""
	}
}

func (g *Gui) newDisabledReasons() DisabledReasons {
	return DisabledReasons{
		PopupOpen:     reasonIf(g.isModalOpen, "Close popup first"),
		NoFilters:     reasonIf(func() bool { return !g.ctrl.HasActiveFilters() }, "No active filters"),
		OverlayClosed: reasonIf(func() bool { return g.currentColumn != "filters" }, "Focus the filters first"),
	}
}

// require returns the first reason any check gives.
func require(checks ...func() string) func() string {
	return func() string {
		for _, check := range checks {
			if reason := check(); reason != "" {
				return reason
			}
		}
		return ""
	}
}

type KeybindingManager struct {
	gui      *Gui
	bindings []*Binding
	disabled DisabledReasons
}

func (g *Gui) newKeybindingManager() *KeybindingManager {
	return &KeybindingManager{gui: g, disabled: g.newDisabledReasons()}
}

func (km *KeybindingManager) RegisterAll(bindings []*Binding) {
	km.bindings = append(km.bindings, bindings...)
}

// Apply installs every binding on the running gocui instance.
func (km *KeybindingManager) Apply() error {
	return km.apply(km.gui.g.SetKeybinding)
}

type bindFunc func(viewName string, key interface{}, mod gocui.Modifier, handler func(*gocui.Gui, *gocui.View) error) error

func (km *KeybindingManager) apply(bind bindFunc) error {
	for _, b := range km.bindings {
		if err := bind(b.ViewName, b.Key, b.Modifier, km.wrapHandler(b)); err != nil {
			return errors.Wrapf(err, "failed to bind %v on %q", b.Key, b.ViewName)
		}
	}
	return nil
}

// dispatch picks what a key press does right now.
func (km *KeybindingManager) dispatch(b *Binding) error {
	if h, ok := b.Contexts[km.gui.getContext()]; ok {
		return h()
	}
	if b.GetDisabledReason == nil {
		return b.Handler()
	}
	if reason := b.GetDisabledReason(); reason != "" {
		km.gui.logCommand(b.Description, reason, "error")
		return km.gui.refresh()
	}
	return b.Handler()
}

func (km *KeybindingManager) wrapHandler(b *Binding) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		return km.dispatch(b)
	}
}

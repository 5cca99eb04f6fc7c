package gui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jesseduffield/gocui"
	"github.com/marjoballabani/lazyshop/pkg/catalog"
	"github.com/marjoballabani/lazyshop/pkg/config"
	"github.com/marjoballabani/lazyshop/pkg/filter"
	"github.com/marjoballabani/lazyshop/pkg/gui/icons"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Spinner frames for loading animation
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type CommandExecution struct {
	Timestamp   string
	Command     string
	Description string
	Status      string
}

// Loader reads the catalog and the registry the filter controller is mounted
// with. It is called at startup and on every reload.
type Loader func() (*catalog.Catalog, filter.Registry, error)

type Gui struct {
	g       *gocui.Gui
	config  *config.Config
	load    Loader
	log     *zap.Logger
	version string
	theme   *Theme

	// ctx bounds product filtering and is cancelled when Run returns
	ctx    context.Context
	cancel context.CancelFunc

	// Filter state
	catalog *catalog.Catalog
	ctrl    *filter.Controller
	pane    *filterPane

	// Products state
	products         []catalog.Product
	selectedProduct  int
	productsLoading  bool
	detailsScrollPos int

	// Command execution tracking
	commandHistory []CommandExecution

	// View names
	views struct {
		background string
		trigger    string
		filters    string
		products   string
		details    string
		commands   string
		help       string
		modal      string
		helpModal  string
		priceModal string
		priceInput string
	}

	// Current column: "filters", "products", "details"
	currentColumn  string
	previousColumn string // column to return to when the overlay closes

	// Presentation variant, recomputed from the terminal width on every layout
	variant     variant
	overlayOpen bool

	// Modal state
	modalOpen bool
	helpOpen  bool
	helpPopup *Popup

	// Loading state
	spinnerFrame uint32 // Current spinner animation frame

	// Product search state
	filterInputActive bool   // true when typing in search bar
	filterInputText   string // current input text
	filterCursorPos   int    // cursor position in search text
	productsFilter    string // committed search, cleared by Esc

	// Price editor state
	priceEditorOpen bool
	priceRow        int
	priceEditMode   bool
	priceLowText    string
	priceHighText   string
	priceError      string

	// Frame styling
	roundedFrameRunes []rune
}

func NewGui(config *config.Config, load Loader, log *zap.Logger, version string) (*Gui, error) {
	gui, err := newGuiState(config, load, log, version)
	if err != nil {
		return nil, err
	}

	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode:      gocui.OutputTrue,
		SupportOverlaps: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gui")
	}
	gui.g = g

	// Initialize icons based on config
	if !config.UI.ShowIcons {
		icons.SetEnabled(false)
	} else {
		switch config.UI.NerdFontsVersion {
		case "2":
			icons.PatchForNerdFontsV2()
		case "3":
			// Default v3 icons, nothing to do
		default:
			// Disable icons for graceful fallback
			icons.SetEnabled(false)
		}
	}

	// Configure gocui
	g.Cursor = false
	g.Mouse = true
	g.InputEsc = true
	g.ShowListFooter = true // Show "X of Y" footer

	// Set colors for frames from theme
	g.BgColor = gocui.ColorDefault
	g.FgColor = gocui.ColorDefault
	g.FrameColor = gui.theme.InactiveBorderColor
	g.SelFrameColor = gui.theme.ActiveBorderColor
	g.SelFgColor = gui.theme.ActiveBorderColor
	g.Highlight = true

	// Set layout function
	g.SetManagerFunc(func(g *gocui.Gui) error {
		return gui.Layout(g)
	})

	// Set up keybindings
	if err := gui.setKeybindings(); err != nil {
		return nil, err
	}

	return gui, nil
}

// newGuiState builds everything except the terminal, so state transitions can
// be driven without a screen.
func newGuiState(config *config.Config, load Loader, log *zap.Logger, version string) (*Gui, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	gui := &Gui{
		ctx:           ctx,
		cancel:        cancel,
		config:        config,
		load:          load,
		log:           log,
		version:       version,
		theme:         NewTheme(config.UI.Theme),
		currentColumn: "filters",
	}

	// Set view names
	gui.views.background = "background"
	gui.views.trigger = "trigger"
	gui.views.filters = "filters"
	gui.views.products = "products"
	gui.views.details = "details"
	gui.views.commands = "commands"
	gui.views.help = "help"
	gui.views.modal = "modal"
	gui.views.helpModal = "helpModal"
	gui.views.priceModal = "priceModal"
	gui.views.priceInput = "priceInput"

	// Rounded frame characters: ─ │ ╭ ╮ ╰ ╯
	gui.roundedFrameRunes = []rune{'─', '│', '╭', '╮', '╰', '╯'}

	gui.logCommand("init", "lazyshop starting...", "running")

	cat, reg, err := load()
	if err != nil {
		return nil, err
	}
	gui.mount(cat, reg)
	gui.logCommand("catalog", fmt.Sprintf("%s: %d brands, %d products", cat.Source(), len(cat.Brands), len(cat.Products)), "success")

	return gui, nil
}

// mount replaces the catalog and mounts a fresh controller over its registry.
// The previous selection is dropped with the old controller.
func (g *Gui) mount(cat *catalog.Catalog, reg filter.Registry) {
	g.catalog = cat
	g.ctrl = filter.NewController(reg,
		filter.WithOnChange(g.onFilterChange),
		filter.WithLogger(g.log))
	g.pane = newFilterPane(g.ctrl)
	g.products = nil
	g.selectedProduct = 0
	g.detailsScrollPos = 0
}

// onFilterChange is the controller's sink: it narrows the product list.
func (g *Gui) onFilterChange(f filter.CombinedFilter) {
	products, err := g.catalog.Apply(g.ctx, f)
	// this result supersedes any load still in flight
	g.productsLoading = false
	if err != nil {
		g.logCommand("filter", fmt.Sprintf("Failed: %v", err), "error")
		return
	}
	g.setProducts(products)
	g.logCommand("filter", fmt.Sprintf("%d products match %s", len(products), describeFilter(f)), "success")
}

func (g *Gui) setProducts(products []catalog.Product) {
	g.products = products
	if g.selectedProduct >= len(products) {
		g.selectedProduct = len(products) - 1
	}
	if g.selectedProduct < 0 {
		g.selectedProduct = 0
	}
	g.detailsScrollPos = 0
}

// describeFilter is the short form of a combined filter for the command log.
func describeFilter(f filter.CombinedFilter) string {
	n := len(f.Brands) + len(f.Storage) + len(f.RAM)
	return fmt.Sprintf("%d facets, %.0f-%.0f", n, f.PriceRange.Low, f.PriceRange.High)
}

// loadProducts computes the initial product list for the mounted controller.
// With a screen it runs in the background behind the spinner.
func (g *Gui) loadProducts() {
	ctrl, cat := g.ctrl, g.catalog
	f := ctrl.Filter()
	seq := ctrl.Notifications()

	g.productsLoading = true
	g.logCommand("load", "Loading products...", "running")

	if g.g == nil {
		products, err := cat.Apply(g.ctx, f)
		g.finishLoad(ctrl, seq, products, err)
		return
	}

	go func() {
		products, err := cat.Apply(g.ctx, f)
		g.g.Update(func(gui *gocui.Gui) error {
			g.finishLoad(ctrl, seq, products, err)
			return nil
		})
	}()
}

// finishLoad installs a background result unless the controller was replaced
// or has emitted since the load started.
func (g *Gui) finishLoad(ctrl *filter.Controller, seq int, products []catalog.Product, err error) {
	if g.ctrl != ctrl || ctrl.Notifications() != seq {
		g.log.Debug("dropping stale product load", zap.Int("seq", seq))
		return
	}
	g.productsLoading = false
	if err != nil {
		g.logCommand("load", fmt.Sprintf("Failed: %v", err), "error")
		return
	}
	g.setProducts(products)
	g.logCommand("load", fmt.Sprintf("Loaded %d products", len(products)), "success")
}

func (g *Gui) getActiveColorCode() string {
	return g.theme.GetAnsiColorCode()
}

func (g *Gui) logCommand(command, description, status string) {
	timestamp := time.Now().Format("15:04:05")

	cmdExec := CommandExecution{
		Timestamp:   timestamp,
		Command:     command,
		Description: description,
		Status:      status,
	}

	g.commandHistory = append(g.commandHistory, cmdExec)

	// Keep only last 10 commands
	if len(g.commandHistory) > 10 {
		g.commandHistory = g.commandHistory[1:]
	}
}

// refresh redraws when a screen is attached.
func (g *Gui) refresh() error {
	if g.g == nil {
		return nil
	}
	return g.Layout(g.g)
}

func (g *Gui) Run() error {
	defer g.g.Close()
	defer g.cancel()

	// Start spinner animation ticker
	go func() {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			atomic.AddUint32(&g.spinnerFrame, 1)
			if g.isAnyLoading() {
				g.g.Update(func(gui *gocui.Gui) error {
					return nil
				})
			}
		}
	}()

	g.loadProducts()

	if err := g.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

// getLoadingText returns formatted loading text with animated spinner
func (g *Gui) getLoadingText(text string) string {
	frame := atomic.LoadUint32(&g.spinnerFrame)
	spinner := spinnerFrames[frame%uint32(len(spinnerFrames))]
	return fmt.Sprintf("\033[33m%s %s\033[0m", spinner, text)
}

// isAnyLoading returns true if any panel is currently loading
func (g *Gui) isAnyLoading() bool {
	return g.productsLoading
}

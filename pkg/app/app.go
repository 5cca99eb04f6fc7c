// Package app is the main application entry point for lazyshop.
// It coordinates initialization of configuration, logging, the catalog, and the GUI.
package app

import (
	"github.com/marjoballabani/lazyshop/pkg/catalog"
	"github.com/marjoballabani/lazyshop/pkg/config"
	"github.com/marjoballabani/lazyshop/pkg/filter"
	"github.com/marjoballabani/lazyshop/pkg/gui"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BuildInfo contains version information set at compile time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App is the main application struct that holds all components.
type App struct {
	buildInfo *BuildInfo
	config    *config.Config
	logger    *zap.Logger
	catalog   *catalog.Catalog
	gui       *gui.Gui
}

// NewApp creates a new App instance with the given build information.
// It loads configuration and sets up logging but does not load the catalog or GUI yet.
func NewApp(buildInfo *BuildInfo) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	logger, err := NewLogger(cfg.Debug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open debug log")
	}

	return &App{
		buildInfo: buildInfo,
		config:    cfg,
		logger:    logger,
	}, nil
}

// NewLogger returns a debug-level JSON logger writing to cfg.LogFile, or a
// no-op logger when no file is configured. The terminal belongs to the GUI so
// logs never go to stdout or stderr.
func NewLogger(cfg config.DebugConfig) (*zap.Logger, error) {
	if cfg.LogFile == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}
	return zc.Build()
}

// Overrides maps the facets section of the config onto catalog overrides.
func Overrides(cfg config.FacetsConfig) catalog.Overrides {
	return catalog.Overrides{
		StorageOptions: cfg.StorageOptions,
		RAMOptions:     cfg.RAMOptions,
		MinPrice:       cfg.MinPrice,
		MaxPrice:       cfg.MaxPrice,
		PriceStep:      cfg.PriceStep,
	}
}

// loadCatalog reads the configured catalog and builds its registry. The GUI
// calls it at startup and again on every reload.
func (app *App) loadCatalog() (*catalog.Catalog, filter.Registry, error) {
	cat, err := catalog.Load(app.config.Catalog.Path)
	if err != nil {
		return nil, filter.Registry{}, errors.Wrap(err, "failed to load catalog")
	}
	app.catalog = cat
	app.logger.Info("catalog loaded",
		zap.String("source", cat.Source()),
		zap.Int("brands", len(cat.Brands)),
		zap.Int("products", len(cat.Products)))

	return cat, cat.Registry(Overrides(app.config.Facets)), nil
}

// Run creates the GUI over the catalog and runs the main event loop.
// It blocks until the user quits.
func (app *App) Run() error {
	defer app.logger.Sync()

	// Initialize and run the terminal UI
	gui, err := gui.NewGui(app.config, app.loadCatalog, app.logger, app.buildInfo.Version)
	if err != nil {
		return errors.Wrap(err, "failed to initialize GUI")
	}
	app.gui = gui

	return app.gui.Run()
}

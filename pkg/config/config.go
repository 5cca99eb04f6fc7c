// Package config handles loading and parsing of lazyshop configuration.
// Configuration is loaded from ~/.lazyshop/config.yaml or ./config.yaml
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the root configuration structure for lazyshop.
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Facets  FacetsConfig  `mapstructure:"facets"`
	Debug   DebugConfig   `mapstructure:"debug"`
}

// UIConfig contains user interface configuration options.
type UIConfig struct {
	Theme ThemeConfig `mapstructure:"theme"`
	// ShowIcons toggles the icon column in panels
	ShowIcons bool `mapstructure:"showIcons"`
	// NerdFontsVersion selects the glyph set: "3" (default), "2", or "" for plain text
	NerdFontsVersion string `mapstructure:"nerdFontsVersion"`
	// PanelBreakpoint is the terminal width at which the filters become a
	// permanent side panel instead of a pop-out sheet
	PanelBreakpoint int `mapstructure:"panelBreakpoint"`
	// Currency is the symbol prefixed to prices
	Currency string `mapstructure:"currency"`
}

// ThemeConfig defines the color scheme for the terminal UI.
// Colors can be specified as:
//   - Named colors: "cyan", "blue", "red", "green", "yellow", "magenta", "white", "black", "default"
//   - Hex colors: "#ed8796"
//   - 256-color numbers: "0" to "255"
//   - Attributes: "bold", "underline", "reverse"
type ThemeConfig struct {
	// ActiveBorderColor is the color of the focused panel's border and title
	ActiveBorderColor []string `mapstructure:"activeBorderColor"`
	// InactiveBorderColor is the color of unfocused panel borders
	InactiveBorderColor []string `mapstructure:"inactiveBorderColor"`
	// OptionsTextColor is the color of help text in the footer
	OptionsTextColor []string `mapstructure:"optionsTextColor"`
	// SelectedLineBgColor is the background color of the highlighted row
	SelectedLineBgColor []string `mapstructure:"selectedLineBgColor"`
	// FilterBorderColor marks a panel while its search is being typed
	FilterBorderColor []string `mapstructure:"filterBorderColor"`
	// ChipColor is the color of active-filter chips and selected options
	ChipColor []string `mapstructure:"chipColor"`
}

// CatalogConfig points at the product catalog.
type CatalogConfig struct {
	// Path to a catalog JSON file. Empty uses the bundled sample.
	Path string `mapstructure:"path"`
}

// FacetsConfig overrides the facet values the catalog provides.
// Unset keys leave the catalog (or built-in default) value in place.
type FacetsConfig struct {
	StorageOptions []string `mapstructure:"storageOptions"`
	RAMOptions     []string `mapstructure:"ramOptions"`
	MinPrice       *float64 `mapstructure:"minPrice"`
	MaxPrice       *float64 `mapstructure:"maxPrice"`
	PriceStep      float64  `mapstructure:"priceStep"`
}

// DebugConfig controls diagnostic output.
type DebugConfig struct {
	// LogFile receives debug logs when set
	LogFile string `mapstructure:"logFile"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Theme: ThemeConfig{
				ActiveBorderColor:   []string{"cyan"},
				InactiveBorderColor: []string{"default"},
				OptionsTextColor:    []string{"cyan"},
				SelectedLineBgColor: []string{"blue"},
				FilterBorderColor:   []string{"yellow"},
				ChipColor:           []string{"green"},
			},
			ShowIcons:        true,
			NerdFontsVersion: "3",
			PanelBreakpoint:  100,
			Currency:         "₦",
		},
	}
}

// LoadConfig loads configuration from file or returns defaults.
// It searches for config.yaml in ~/.lazyshop/ and the current directory.
func LoadConfig() (*Config, error) {
	config := Default()

	// Create config directory if it doesn't exist
	home, err := os.UserHomeDir()
	if err != nil {
		return config, nil
	}

	configDir := filepath.Join(home, ".lazyshop")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return config, nil
	}

	return load(viper.New(), config, configDir, ".")
}

// load reads config.yaml from the first directory that has one and merges it
// over config. A missing file is not an error.
func load(v *viper.Viper, config *Config, dirs ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return config, nil
		}
		return config, errors.Wrap(err, "failed to read config")
	}
	if err := v.Unmarshal(config); err != nil {
		return config, errors.Wrapf(err, "failed to parse %s", v.ConfigFileUsed())
	}

	return config, nil
}

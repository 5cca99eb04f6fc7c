package gui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jesseduffield/gocui"
	"github.com/marjoballabani/lazyshop/pkg/config"
)

// Theme holds the parsed colours of a config.ThemeConfig.
type Theme struct {
	ActiveBorderColor   gocui.Attribute
	InactiveBorderColor gocui.Attribute
	OptionsTextColor    gocui.Attribute
	SelectedLineBgColor gocui.Attribute
	FilterBorderColor   gocui.Attribute
	ChipColor           gocui.Attribute
}

func NewTheme(cfg config.ThemeConfig) *Theme {
	return &Theme{
		ActiveBorderColor:   parseColor(cfg.ActiveBorderColor),
		InactiveBorderColor: parseColor(cfg.InactiveBorderColor),
		OptionsTextColor:    parseColor(cfg.OptionsTextColor),
		SelectedLineBgColor: parseColor(cfg.SelectedLineBgColor),
		FilterBorderColor:   parseColor(cfg.FilterBorderColor),
		ChipColor:           parseColor(cfg.ChipColor),
	}
}

var namedAttributes = map[string]gocui.Attribute{
	"bold":      gocui.AttrBold,
	"underline": gocui.AttrUnderline,
	"reverse":   gocui.AttrReverse,
}

var namedColors = map[string]gocui.Attribute{
	"default": gocui.ColorDefault,
	"black":   gocui.ColorBlack,
	"red":     gocui.ColorRed,
	"green":   gocui.ColorGreen,
	"yellow":  gocui.ColorYellow,
	"blue":    gocui.ColorBlue,
	"magenta": gocui.ColorMagenta,
	"cyan":    gocui.ColorCyan,
	"white":   gocui.ColorWhite,
}

// parseColor combines a list of colour and attribute names into one
// attribute. Unknown entries are ignored.
func parseColor(names []string) gocui.Attribute {
	attr := gocui.ColorDefault
	for _, s := range names {
		s = strings.ToLower(strings.TrimSpace(s))
		if a, ok := namedAttributes[s]; ok {
			attr |= a
			continue
		}
		attr |= parseColorValue(s)
	}
	return attr
}

// parseColorValue accepts a name, "#rrggbb" or a 256-colour index.
func parseColorValue(s string) gocui.Attribute {
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < 256 {
		return gocui.Attribute(n) | gocui.AttrIsValidColor
	}
	return gocui.ColorDefault
}

func parseHexColor(s string) gocui.Attribute {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return gocui.ColorDefault
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return gocui.ColorDefault
	}
	return gocui.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF))
}

// GetAnsiColorCode returns ANSI escape code for the active border color
func (t *Theme) GetAnsiColorCode() string {
	return attributeToAnsi(t.ActiveBorderColor)
}

// GetChipAnsiCode returns the ANSI foreground code for chips and selected options
func (t *Theme) GetChipAnsiCode() string {
	return attributeToAnsi(t.ChipColor)
}

// GetSelectedBgAnsiCode returns an ANSI background code matching the selected line color
func (t *Theme) GetSelectedBgAnsiCode() string {
	fg := attributeToAnsi(t.SelectedLineBgColor)
	// foreground codes are 3x / 38;...; background codes are 4x / 48;...
	if strings.HasPrefix(fg, "\033[38;") {
		return "\033[48;" + strings.TrimPrefix(fg, "\033[38;")
	}
	if strings.HasPrefix(fg, "\033[3") {
		return "\033[4" + strings.TrimPrefix(fg, "\033[3")
	}
	return "\033[7m"
}

// basicAnsi maps the eight basic colours to their foreground codes.
var basicAnsi = map[gocui.Attribute]string{
	1: "\033[30m",
	2: "\033[31m",
	3: "\033[32m",
	4: "\033[33m",
	5: "\033[34m",
	6: "\033[35m",
	7: "\033[36m",
	8: "\033[37m",
}

// attributeToAnsi renders a colour for text written into a view. Anything
// that is not a colour falls back to cyan.
func attributeToAnsi(attr gocui.Attribute) string {
	if attr&gocui.AttrIsValidColor != 0 {
		rgb := uint32(attr & 0xFFFFFF)
		return fmt.Sprintf("\033[38;2;%d;%d;%dm", rgb>>16&0xFF, rgb>>8&0xFF, rgb&0xFF)
	}
	if code, ok := basicAnsi[attr&0xFF]; ok {
		return code
	}
	return "\033[36m"
}

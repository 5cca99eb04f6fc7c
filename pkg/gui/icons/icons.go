package icons

// Nerd Font icons for lazyshop UI
// These require a Nerd Font to display correctly
// See: https://www.nerdfonts.com/cheat-sheet

var enabled = true

// IsEnabled returns whether icons are enabled
func IsEnabled() bool {
	return enabled
}

// SetEnabled enables or disables icons globally
func SetEnabled(e bool) {
	enabled = e
	if !e {
		disableAllIcons()
	}
}

var (
	// Panel title icons
	SHOP_ICON     = "\U000f0110" // 󰄐 (cart)
	FILTER_ICON   = "\U000f0232" // 󰈲 (filter)
	PRODUCT_ICON  = "\U000f011c" // 󰄜 (cellphone)
	DETAILS_ICON  = "\U000f0219" // 󰈙 (file-document)
	COMMAND_ICON  = "\U000f018d" // 󰆍 (console)
	KEYBOARD_ICON = "\U000f030c" // 󰌌 (keyboard)
	PRICE_ICON    = "\U000f04c0" // 󰓀 (tag)

	// Filter controls
	CHECKBOX_ON   = "\U000f0132" // 󰄲 (checkbox-marked)
	CHECKBOX_OFF  = "\U000f0131" // 󰄱 (checkbox-blank-outline)
	CHEVRON_UP    = "\U000f0143" // 󰅃
	CHEVRON_DOWN  = "\U000f0140" // 󰅀
	CHIP_REMOVE   = "\U000f0156" // 󰅖 (close)
	SLIDER_HANDLE = "●"
	SLIDERS_ICON  = "\U000f0961" // 󰥡 (tune-variant)

	// Status icons
	SELECTED = "\U000f012c" // 󰄬 (check)
	LOADING  = "\U000f0772" // 󰝲 (loading)
	ERROR    = "\U000f0159" // 󰅙 (close-circle)
	SUCCESS  = "\U000f0134" // 󰄴 (check-circle)
	WARNING  = "\U000f0026" // 󰀦 (alert)

	// Action icons
	COPY   = "\U000f018f" // 󰆏 (content-copy)
	SAVE   = "\U000f0193" // 󰆓 (content-save)
	SEARCH = "\U000f0349" // 󰍉 (magnify)
)

// disableAllIcons sets all icons to plain-text fallbacks
func disableAllIcons() {
	SHOP_ICON = ""
	FILTER_ICON = ""
	PRODUCT_ICON = ""
	DETAILS_ICON = ""
	COMMAND_ICON = ""
	KEYBOARD_ICON = ""
	PRICE_ICON = ""
	CHECKBOX_ON = "[x]"
	CHECKBOX_OFF = "[ ]"
	CHEVRON_UP = "^"
	CHEVRON_DOWN = "v"
	CHIP_REMOVE = "x"
	SLIDER_HANDLE = "o"
	SLIDERS_ICON = ""
	SELECTED = "✓"
	LOADING = "…"
	ERROR = "✗"
	SUCCESS = "✓"
	WARNING = "!"
	COPY = ""
	SAVE = ""
	SEARCH = ""
}

// PatchForNerdFontsV2 updates icons for Nerd Fonts v2 compatibility
func PatchForNerdFontsV2() {
	SHOP_ICON = "\uf07a"
	FILTER_ICON = "\uf0b0"
	CHECKBOX_ON = "\uf14a"
	CHECKBOX_OFF = "\uf096"
	CHEVRON_UP = "\uf077"
	CHEVRON_DOWN = "\uf078"
}

package filter

// Section names one collapsible group of the filter UI.
type Section string

const (
	SectionBrands  Section = "brands"
	SectionPrice   Section = "price"
	SectionStorage Section = "storage"
	SectionRAM     Section = "ram"
)

// Sections lists every section in display order.
var Sections = []Section{SectionBrands, SectionPrice, SectionStorage, SectionRAM}

// Title is the heading shown above a section.
func (s Section) Title() string {
	switch s {
	case SectionBrands:
		return "Brands"
	case SectionPrice:
		return "Price Range"
	case SectionStorage:
		return "Storage"
	case SectionRAM:
		return "RAM"
	}
	return string(s)
}

// Visibility tracks which sections are expanded. It has no bearing on the
// selection or the combined filter.
type Visibility struct {
	expanded map[Section]bool
}

// DefaultVisibility expands everything except RAM.
func DefaultVisibility() Visibility {
	return Visibility{expanded: map[Section]bool{
		SectionBrands:  true,
		SectionPrice:   true,
		SectionStorage: true,
		SectionRAM:     false,
	}}
}

// Toggled flips one section and returns the new state.
func (v Visibility) Toggled(s Section) Visibility {
	next := make(map[Section]bool, len(v.expanded)+1)
	for k, val := range v.expanded {
		next[k] = val
	}
	next[s] = !next[s]
	return Visibility{expanded: next}
}

func (v Visibility) Expanded(s Section) bool {
	return v.expanded[s]
}

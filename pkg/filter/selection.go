package filter

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/pkg/errors"
)

// PriceRange is the selected price interval. It encodes as a two element
// JSON array, [low, high].
type PriceRange struct {
	Low  float64
	High float64
}

func (p PriceRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Low, p.High})
}

func (p *PriceRange) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.Wrap(err, "price range must be [low, high]")
	}
	p.Low, p.High = pair[0], pair[1]
	return nil
}

// valueSet is an immutable-by-convention string set. Updates return a copy.
type valueSet map[string]struct{}

func (s valueSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s valueSet) toggled(v string) valueSet {
	next := make(valueSet, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	if s.has(v) {
		delete(next, v)
	} else {
		next[v] = struct{}{}
	}
	return next
}

// ordered returns the members in the order given by options, followed by
// members absent from options in lexical order.
func (s valueSet) ordered(options []string) []string {
	out := make([]string, 0, len(s))
	seen := make(map[string]bool, len(s))
	for _, o := range options {
		if s.has(o) && !seen[o] {
			out = append(out, o)
			seen[o] = true
		}
	}
	var extra []string
	for v := range s {
		if !seen[v] {
			extra = append(extra, v)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// Selection is the shopper's current choice across all facets. It is a value:
// every update returns a new Selection and leaves the receiver untouched.
type Selection struct {
	brands  valueSet
	storage valueSet
	ram     valueSet
	price   PriceRange
}

// NewSelection returns an empty selection spanning the full bounds.
func NewSelection(bounds PriceBounds) Selection {
	return Selection{price: PriceRange{Low: bounds.Min, High: bounds.Max}}
}

func (s Selection) ToggleBrand(id string) Selection {
	s.brands = s.brands.toggled(id)
	return s
}

func (s Selection) ToggleStorage(v string) Selection {
	s.storage = s.storage.toggled(v)
	return s
}

func (s Selection) ToggleRAM(v string) Selection {
	s.ram = s.ram.toggled(v)
	return s
}

// WithPriceRange stores [low, high] clamped so that
// bounds.Min <= low <= high <= bounds.Max. NaN snaps to the matching bound.
func (s Selection) WithPriceRange(low, high float64, bounds PriceBounds) Selection {
	if math.IsNaN(low) {
		low = bounds.Min
	}
	if math.IsNaN(high) {
		high = bounds.Max
	}
	high = bounds.Clamp(high)
	low = clamp(low, bounds.Min, high)
	s.price = PriceRange{Low: low, High: high}
	return s
}

// Cleared resets every facet at once.
func (s Selection) Cleared(bounds PriceBounds) Selection {
	return NewSelection(bounds)
}

// HasActive reports whether any facet narrows the result.
func (s Selection) HasActive(bounds PriceBounds) bool {
	return len(s.brands) > 0 || len(s.storage) > 0 || len(s.ram) > 0 ||
		s.price.Low > bounds.Min || s.price.High < bounds.Max
}

// Count is the number of selected list values. Price is not counted.
func (s Selection) Count() int {
	return len(s.brands) + len(s.storage) + len(s.ram)
}

func (s Selection) HasBrand(id string) bool  { return s.brands.has(id) }
func (s Selection) HasStorage(v string) bool { return s.storage.has(v) }
func (s Selection) HasRAM(v string) bool     { return s.ram.has(v) }
func (s Selection) PriceRange() PriceRange   { return s.price }

// Has reports membership for any list section.
func (s Selection) Has(sec Section, v string) bool {
	switch sec {
	case SectionBrands:
		return s.HasBrand(v)
	case SectionStorage:
		return s.HasStorage(v)
	case SectionRAM:
		return s.HasRAM(v)
	}
	return false
}

// CombinedFilter is the payload handed to the change sink. It is derived from
// a Selection and never stored on its own.
type CombinedFilter struct {
	Brands     []string   `json:"brands"`
	Storage    []string   `json:"storage"`
	RAM        []string   `json:"ram"`
	PriceRange PriceRange `json:"priceRange"`
}

// Derive computes the combined filter for a selection. Brands are reported by
// display name; ids sharing a name appear once.
func Derive(reg Registry, s Selection) CombinedFilter {
	ids := s.brands.ordered(reg.Options(SectionBrands))
	names := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		name := reg.BrandName(id)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return CombinedFilter{
		Brands:     names,
		Storage:    s.storage.ordered(reg.StorageOptions),
		RAM:        s.ram.ordered(reg.RAMOptions),
		PriceRange: s.price,
	}
}

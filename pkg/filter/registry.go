// Package filter holds the storefront filter state: the facet registry supplied
// at mount, the shopper's selection, per-section visibility and the emitter that
// reports every change of the combined filter to a consumer.
//
// Nothing in this package performs I/O. All operations are synchronous and run
// to completion on the caller's goroutine.
package filter

import "math"

// Default facet values used when the registry provider supplies none.
var (
	DefaultStorageOptions = []string{"64GB", "128GB", "256GB", "512GB", "1TB"}
	DefaultRAMOptions     = []string{"4GB", "6GB", "8GB", "12GB", "16GB"}
	DefaultPriceBounds    = PriceBounds{Min: 0, Max: 300000}
)

// DefaultPriceStep matches the slider step of the storefront price control.
const DefaultPriceStep = 5000

// FacetOption is one selectable brand.
type FacetOption struct {
	ID          string `json:"id" mapstructure:"id"`
	DisplayName string `json:"name" mapstructure:"name"`
}

// PriceBounds is the inclusive price interval for a session.
type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Clamp returns v limited to the bounds.
func (b PriceBounds) Clamp(v float64) float64 {
	return clamp(v, b.Min, b.Max)
}

// Registry lists the options a shopper can pick from. It is immutable once
// handed to a Controller.
type Registry struct {
	Brands         []FacetOption
	StorageOptions []string
	RAMOptions     []string
	Bounds         PriceBounds
	PriceStep      float64

	brandIdx map[string]int
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithBrands sets the brand list. An empty list is valid.
func WithBrands(brands []FacetOption) RegistryOption {
	return func(r *Registry) {
		r.Brands = append([]FacetOption(nil), brands...)
	}
}

// WithStorageOptions overrides the storage list. A nil slice keeps the default.
func WithStorageOptions(opts []string) RegistryOption {
	return func(r *Registry) {
		if opts != nil {
			r.StorageOptions = append([]string{}, opts...)
		}
	}
}

// WithRAMOptions overrides the RAM list. A nil slice keeps the default.
func WithRAMOptions(opts []string) RegistryOption {
	return func(r *Registry) {
		if opts != nil {
			r.RAMOptions = append([]string{}, opts...)
		}
	}
}

// WithPriceBounds sets the price interval. Reversed bounds are swapped.
func WithPriceBounds(min, max float64) RegistryOption {
	return func(r *Registry) {
		if math.IsNaN(min) || math.IsNaN(max) {
			return
		}
		if min > max {
			min, max = max, min
		}
		r.Bounds = PriceBounds{Min: min, Max: max}
	}
}

// WithPriceStep sets the increment used when nudging a price handle.
func WithPriceStep(step float64) RegistryOption {
	return func(r *Registry) {
		if step > 0 {
			r.PriceStep = step
		}
	}
}

// NewRegistry builds a registry starting from the defaults.
func NewRegistry(opts ...RegistryOption) Registry {
	r := Registry{
		StorageOptions: append([]string{}, DefaultStorageOptions...),
		RAMOptions:     append([]string{}, DefaultRAMOptions...),
		Bounds:         DefaultPriceBounds,
		PriceStep:      DefaultPriceStep,
	}
	for _, opt := range opts {
		opt(&r)
	}
	r.brandIdx = make(map[string]int, len(r.Brands))
	for i, b := range r.Brands {
		if _, dup := r.brandIdx[b.ID]; !dup {
			r.brandIdx[b.ID] = i
		}
	}
	return r
}

// BrandName resolves a brand id to its display name. Unknown ids are
// returned unchanged.
func (r Registry) BrandName(id string) string {
	if i, ok := r.brandIdx[id]; ok {
		return r.Brands[i].DisplayName
	}
	return id
}

// Options returns the registry's values for a list section, in display order.
func (r Registry) Options(section Section) []string {
	switch section {
	case SectionBrands:
		ids := make([]string, len(r.Brands))
		for i, b := range r.Brands {
			ids[i] = b.ID
		}
		return ids
	case SectionStorage:
		return r.StorageOptions
	case SectionRAM:
		return r.RAMOptions
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

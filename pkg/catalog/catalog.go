// Package catalog is the storefront's data source. It loads brands and products
// from a JSON file (or a built-in sample), supplies the facet registry for the
// filter controller, and narrows products with a combined filter.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/marjoballabani/lazyshop/pkg/filter"
	"github.com/pkg/errors"
)

// Product is one item in the catalog. Brand holds the brand's display name.
type Product struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Brand   string  `json:"brand"`
	Storage string  `json:"storage"`
	RAM     string  `json:"ram"`
	Price   float64 `json:"price"`
}

// Catalog is the decoded catalog file.
type Catalog struct {
	Brands         []filter.FacetOption `json:"brands"`
	Products       []Product            `json:"products"`
	StorageOptions []string             `json:"storageOptions,omitempty"`
	RAMOptions     []string             `json:"ramOptions,omitempty"`
	MinPrice       *float64             `json:"minPrice,omitempty"`
	MaxPrice       *float64             `json:"maxPrice,omitempty"`

	source    string
	docs      []any
	predicate *gojq.Code
}

// Overrides are registry values from configuration. Zero values defer to the
// catalog, and then to the filter defaults.
type Overrides struct {
	StorageOptions []string
	RAMOptions     []string
	MinPrice       *float64
	MaxPrice       *float64
	PriceStep      float64
}

// Load reads a catalog file. An empty path returns the built-in sample.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Sample()
	}

	path = expandHome(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog %s", path)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load catalog %s", path)
	}
	c.source = path
	return c, nil
}

// Parse decodes catalog JSON and prepares it for filtering.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "invalid catalog JSON")
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	c.source = "inline"
	return &c, nil
}

func (c *Catalog) init() error {
	for i, b := range c.Brands {
		if b.ID == "" {
			return errors.Errorf("brand %d has no id", i)
		}
		if b.DisplayName == "" {
			c.Brands[i].DisplayName = b.ID
		}
	}

	code, err := compilePredicate()
	if err != nil {
		return err
	}
	c.predicate = code

	c.docs = make([]any, len(c.Products))
	for i, p := range c.Products {
		c.docs[i] = p.doc()
	}
	return nil
}

// Source describes where the catalog came from, for display.
func (c *Catalog) Source() string {
	return c.source
}

// Registry builds the facet registry. Config overrides win over catalog
// values, which win over the filter defaults.
func (c *Catalog) Registry(o Overrides) filter.Registry {
	opts := []filter.RegistryOption{
		filter.WithBrands(c.Brands),
		filter.WithStorageOptions(firstNonNil(o.StorageOptions, c.StorageOptions)),
		filter.WithRAMOptions(firstNonNil(o.RAMOptions, c.RAMOptions)),
		filter.WithPriceStep(o.PriceStep),
	}

	bounds := filter.DefaultPriceBounds
	if v := firstSet(o.MinPrice, c.MinPrice); v != nil {
		bounds.Min = *v
	}
	if v := firstSet(o.MaxPrice, c.MaxPrice); v != nil {
		bounds.Max = *v
	}
	opts = append(opts, filter.WithPriceBounds(bounds.Min, bounds.Max))

	return filter.NewRegistry(opts...)
}

func firstNonNil(lists ...[]string) []string {
	for _, l := range lists {
		if l != nil {
			return l
		}
	}
	return nil
}

func firstSet(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

// doc converts a product to the generic form gojq operates on.
func (p Product) doc() map[string]any {
	return map[string]any{
		"id":      p.ID,
		"name":    p.Name,
		"brand":   p.Brand,
		"storage": p.Storage,
		"ram":     p.RAM,
		"price":   p.Price,
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

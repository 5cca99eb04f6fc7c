package catalog

import (
	"context"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/marjoballabani/lazyshop/pkg/filter"
	"github.com/pkg/errors"
)

// predicateSrc decides whether one product passes a combined filter. Facet
// values compare with ==, so "8GB" never matches "128GB". An empty facet list
// does not constrain.
const predicateSrc = `
def allowed($xs; $v): ($xs | length) == 0 or any($xs[]; . == $v);
allowed($brands; .brand)
  and allowed($storage; .storage)
  and allowed($ram; .ram)
  and .price >= $low
  and .price <= $high
`

var predicateVars = []string{"$brands", "$storage", "$ram", "$low", "$high"}

func compilePredicate() (*gojq.Code, error) {
	query, err := gojq.Parse(predicateSrc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse product predicate")
	}
	code, err := gojq.Compile(query, gojq.WithVariables(predicateVars))
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile product predicate")
	}
	return code, nil
}

// Apply returns the products that satisfy f, in catalog order.
func (c *Catalog) Apply(ctx context.Context, f filter.CombinedFilter) ([]Product, error) {
	vars := []any{
		toAny(f.Brands),
		toAny(f.Storage),
		toAny(f.RAM),
		f.PriceRange.Low,
		f.PriceRange.High,
	}

	matched := make([]Product, 0, len(c.Products))
	for i, doc := range c.docs {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "product filter cancelled")
		}
		ok, err := truthy(c.predicate.RunWithContext(ctx, doc, vars...))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to filter product %s", c.Products[i].ID)
		}
		if ok {
			matched = append(matched, c.Products[i])
		}
	}
	return matched, nil
}

// Search narrows products by text. Text starting with "." is a jq expression
// evaluated against each product and a product is kept when it yields a
// truthy value. Anything else is a case-insensitive substring match on name,
// brand, storage and RAM.
func Search(products []Product, text string) ([]Product, error) {
	if text == "" {
		return products, nil
	}
	if strings.HasPrefix(text, ".") {
		return searchJq(products, text)
	}

	needle := strings.ToLower(text)
	var found []Product
	for _, p := range products {
		for _, field := range []string{p.Name, p.Brand, p.Storage, p.RAM} {
			if strings.Contains(strings.ToLower(field), needle) {
				found = append(found, p)
				break
			}
		}
	}
	return found, nil
}

func searchJq(products []Product, expr string) ([]Product, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, errors.Wrap(err, "jq parse error")
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, errors.Wrap(err, "jq compile error")
	}

	var found []Product
	for _, p := range products {
		ok, err := truthy(code.Run(p.doc()))
		if err != nil {
			return nil, errors.Wrap(err, "jq error")
		}
		if ok {
			found = append(found, p)
		}
	}
	return found, nil
}

// truthy reports whether the first value of iter is neither null nor false.
func truthy(iter gojq.Iter) (bool, error) {
	v, ok := iter.Next()
	if !ok {
		return false, nil
	}
	if err, isErr := v.(error); isErr {
		return false, err
	}
	switch v := v.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	}
	return true, nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

package catalog

import (
	_ "embed"

	"github.com/pkg/errors"
)

//go:embed sample.json
var sampleJSON []byte

// Sample returns the catalog bundled with the binary, used when no catalog
// path is configured.
func Sample() (*Catalog, error) {
	c, err := Parse(sampleJSON)
	if err != nil {
		return nil, errors.Wrap(err, "bundled sample catalog is invalid")
	}
	c.source = "sample"
	return c, nil
}

// Package catalog maps the served arXiv categories to their physical tables.
// The set is closed: identifiers reach SQL only through this mapping, user
// input never does
package catalog

import (
	perr "paperscope/internal/platform/errors"
)

// Category is a served arXiv category code
type Category string

// Served categories
const (
	CSCV Category = "cs.CV"
	CSHC Category = "cs.HC"
	CSGR Category = "cs.GR"
)

var tables = map[Category]string{
	CSCV: "papers_cs_cv",
	CSHC: "papers_cs_hc",
	CSGR: "papers_cs_gr",
}

// All returns the served categories in a stable order
func All() []Category { return []Category{CSCV, CSHC, CSGR} }

// Parse validates a raw category string against the catalog
func Parse(raw string) (Category, error) {
	c := Category(raw)
	if _, ok := tables[c]; !ok {
		return "", perr.InvalidArgf("unknown category %q", raw)
	}
	return c, nil
}

// Table returns the physical table for a catalog category. Panics on a
// category that did not come through Parse
func (c Category) Table() string {
	t, ok := tables[c]
	if !ok {
		panic("catalog: table lookup for unvalidated category " + string(c))
	}
	return t
}

// String returns the category code
func (c Category) String() string { return string(c) }

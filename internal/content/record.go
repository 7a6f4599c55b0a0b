// Package content holds the static page records the router serves.
package content

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrDuplicateRoute is returned when two records share a route.
	ErrDuplicateRoute = errors.New("content: duplicate route")
	// ErrEmptyRoute is returned for a record without a route.
	ErrEmptyRoute = errors.New("content: empty route")
	// ErrInvalidRoute is returned for a route that is not a single path segment.
	ErrInvalidRoute = errors.New("content: invalid route")
)

// Record is one navigable page.
type Record struct {
	Route      string   `yaml:"route" json:"route"`
	Title      string   `yaml:"title" json:"title"`
	Breadcrumb []string `yaml:"breadcrumb" json:"breadcrumb"`
	Body       string   `yaml:"body" json:"body,omitempty"`
}

func (r Record) clone() Record {
	r.Breadcrumb = slices.Clone(r.Breadcrumb)
	return r
}

// Table maps routes to records. It is immutable once built and iterates in
// insertion order.
type Table struct {
	order   []string
	records map[string]Record
}

// NewTable builds a Table from records in the given order.
func NewTable(records ...Record) (*Table, error) {
	t := &Table{
		order:   make([]string, 0, len(records)),
		records: make(map[string]Record, len(records)),
	}
	for _, rec := range records {
		route := strings.TrimSpace(rec.Route)
		if route == "" {
			return nil, fmt.Errorf("%w (title %q)", ErrEmptyRoute, rec.Title)
		}
		if strings.ContainsAny(route, `/\`) || route == "." || route == ".." {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRoute, route)
		}
		if _, ok := t.records[route]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, route)
		}
		rec.Route = route
		t.order = append(t.order, route)
		t.records[route] = rec.clone()
	}
	return t, nil
}

// Merge returns a new Table with extra records appended after t's records.
func (t *Table) Merge(extra ...Record) (*Table, error) {
	return NewTable(append(t.Records(), extra...)...)
}

// Get returns the record for route.
func (t *Table) Get(route string) (Record, bool) {
	rec, ok := t.records[route]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

// Has reports whether route is in the table.
func (t *Table) Has(route string) bool {
	_, ok := t.records[route]
	return ok
}

// Routes returns the route identifiers in insertion order.
func (t *Table) Routes() []string {
	return slices.Clone(t.order)
}

// Records returns copies of all records in insertion order.
func (t *Table) Records() []Record {
	out := make([]Record, 0, len(t.order))
	for _, route := range t.order {
		out = append(out, t.records[route].clone())
	}
	return out
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.order)
}

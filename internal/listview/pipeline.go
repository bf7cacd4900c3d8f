// Package listview renders the rows of a table from a collection snapshot.
//
// Rendering is a pure function of the snapshot and the UI state: filter or
// sort, keep active records, then cut the requested page.
package listview

import (
	"slices"
	"strings"
)

// ActiveStatus is the only status value that reaches a rendered table.
const ActiveStatus = "active"

// Accessor reads a sortable field from a record.
type Accessor[T any] func(T) any

// Config describes how one entity type is rendered.
type Config[T any] struct {
	// Fields maps sortable column names to accessors.
	Fields map[string]Accessor[T]
	// FilterField returns the one field free-text filtering matches against.
	FilterField func(T) string
	// Status returns the record status. Nil for entities without one, which
	// skips the status projection.
	Status      func(T) string
	DefaultSort SortKey
	DefaultSize int
}

// Result is what a table needs to draw itself.
type Result[T any] struct {
	Rows []T `json:"rows"`
	// TotalCount is the size of the whole collection, not of the filtered rows.
	TotalCount int `json:"totalCount"`
	// EmptyRowCount is the number of filler rows that keep the table height.
	EmptyRowCount int `json:"emptyRowCount"`
	// NotFound reports that the filter matched nothing.
	NotFound bool  `json:"notFound"`
	Query    Query `json:"-"`
}

// Render produces the visible rows for records under q.
func (c Config[T]) Render(records []T, q Query) Result[T] {
	matched := c.filterOrSort(records, q.Sort, q.Filter)
	visible := c.projectActive(matched)

	return Result[T]{
		Rows:          window(visible, q.Page),
		TotalCount:    len(records),
		EmptyRowCount: emptyRows(q.Page, len(records)),
		NotFound:      len(matched) == 0,
		Query:         q,
	}
}

// filterOrSort filters the unsorted records when query is set and sorts them
// otherwise. A filtered table is therefore never sorted; that is how the
// dashboard has always behaved and is kept until product says otherwise.
func (c Config[T]) filterOrSort(records []T, key SortKey, query string) []T {
	if query != "" {
		needle := strings.ToLower(query)
		out := make([]T, 0, len(records))
		for _, rec := range records {
			if c.FilterField == nil {
				continue
			}
			if strings.Contains(strings.ToLower(c.FilterField(rec)), needle) {
				out = append(out, rec)
			}
		}
		return out
	}

	out := slices.Clone(records)
	if out == nil {
		out = []T{}
	}
	get, ok := c.Fields[key.Field]
	if !ok {
		return out
	}
	cmp := Comparator(key.Direction)
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp(get(a), get(b))
	})
	return out
}

func (c Config[T]) projectActive(records []T) []T {
	if c.Status == nil {
		return records
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if c.Status(rec) == ActiveStatus {
			out = append(out, rec)
		}
	}
	return out
}

func (c Config[T]) pageSize() int {
	if c.DefaultSize > 0 {
		return c.DefaultSize
	}
	return PageSizes[len(PageSizes)-1]
}

func window[T any](rows []T, p Page) []T {
	if p.Size <= 0 || p.Index < 0 {
		return []T{}
	}
	start := p.Index * p.Size
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+p.Size, len(rows))
	return rows[start:end]
}

// emptyRows is measured against the whole collection, matching TotalCount.
func emptyRows(p Page, total int) int {
	if p.Index <= 0 {
		return 0
	}
	return max(0, (p.Index+1)*p.Size-total)
}

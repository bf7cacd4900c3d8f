package listview

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// Direction is the sort direction of a column.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var (
	// ErrInvalidPageSize indicates a page size outside PageSizes.
	ErrInvalidPageSize = errors.New("invalid page size")
	// ErrInvalidPageIndex indicates a negative page index.
	ErrInvalidPageIndex = errors.New("invalid page index")
	// ErrInvalidDirection indicates a sort direction other than asc or desc.
	ErrInvalidDirection = errors.New("invalid sort direction")
)

// PageSizes lists the rows-per-page options offered by every table.
var PageSizes = []int{5, 10, 25}

// SortKey selects the field and direction rows are ordered by.
type SortKey struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Toggle returns the key produced by clicking the header of field: the same
// ascending field flips to descending, anything else sorts field ascending.
// The server takes sort and order as given; clients use Toggle to derive them.
func (k SortKey) Toggle(field string) SortKey {
	if k.Field == field && k.Direction == Asc {
		return SortKey{Field: field, Direction: Desc}
	}
	return SortKey{Field: field, Direction: Asc}
}

// Page is a zero-based window into the rendered rows.
type Page struct {
	Index int `json:"index"`
	Size  int `json:"size"`
}

// NewPage validates index and size.
func NewPage(index, size int) (Page, error) {
	if index < 0 {
		return Page{}, fmt.Errorf("%w: %d", ErrInvalidPageIndex, index)
	}
	if !slices.Contains(PageSizes, size) {
		return Page{}, fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	return Page{Index: index, Size: size}, nil
}

// WithSize changes the page size and resets the index to the first page.
// Clients changing rows-per-page send the page this returns.
func (p Page) WithSize(size int) (Page, error) {
	return NewPage(0, size)
}

// Query bundles the UI state a list view is rendered with.
type Query struct {
	Sort   SortKey
	Filter string
	Page   Page
}

// QueryParams carries raw, possibly empty, query values as they arrive from
// a URL or a tool call.
type QueryParams struct {
	Sort        string
	Order       string
	Filter      string
	Page        string
	RowsPerPage string
}

// ParseQuery resolves raw params against the defaults of cfg.
func (c Config[T]) ParseQuery(p QueryParams) (Query, error) {
	q := Query{
		Sort:   c.DefaultSort,
		Filter: p.Filter,
		Page:   Page{Index: 0, Size: c.pageSize()},
	}

	if p.Sort != "" {
		q.Sort.Field = p.Sort
	}
	switch Direction(p.Order) {
	case "":
	case Asc, Desc:
		q.Sort.Direction = Direction(p.Order)
	default:
		return Query{}, fmt.Errorf("%w: %q", ErrInvalidDirection, p.Order)
	}

	index := 0
	if p.Page != "" {
		n, err := strconv.Atoi(p.Page)
		if err != nil {
			return Query{}, fmt.Errorf("%w: %q", ErrInvalidPageIndex, p.Page)
		}
		index = n
	}
	size := q.Page.Size
	if p.RowsPerPage != "" {
		n, err := strconv.Atoi(p.RowsPerPage)
		if err != nil {
			return Query{}, fmt.Errorf("%w: %q", ErrInvalidPageSize, p.RowsPerPage)
		}
		size = n
	}

	page, err := NewPage(index, size)
	if err != nil {
		return Query{}, err
	}
	q.Page = page
	return q, nil
}

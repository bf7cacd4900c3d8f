package listview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortKey_Toggle(t *testing.T) {
	key := SortKey{Field: "name", Direction: Asc}

	key = key.Toggle("name")
	require.Equal(t, SortKey{Field: "name", Direction: Desc}, key)

	key = key.Toggle("name")
	require.Equal(t, SortKey{Field: "name", Direction: Asc}, key)

	key = key.Toggle("email")
	require.Equal(t, SortKey{Field: "email", Direction: Asc}, key)
}

func TestNewPage(t *testing.T) {
	page, err := NewPage(2, 10)
	require.NoError(t, err)
	require.Equal(t, Page{Index: 2, Size: 10}, page)

	_, err = NewPage(0, 7)
	require.ErrorIs(t, err, ErrInvalidPageSize)

	_, err = NewPage(-1, 5)
	require.ErrorIs(t, err, ErrInvalidPageIndex)
}

func TestPage_WithSizeResetsIndex(t *testing.T) {
	page := Page{Index: 3, Size: 5}
	resized, err := page.WithSize(25)
	require.NoError(t, err)
	require.Equal(t, Page{Index: 0, Size: 25}, resized)
}

func TestParseQuery(t *testing.T) {
	cfg := rowConfig()

	q, err := cfg.ParseQuery(QueryParams{})
	require.NoError(t, err)
	require.Equal(t, Query{Sort: SortKey{Field: "name", Direction: Asc}, Page: Page{Index: 0, Size: 25}}, q)

	q, err = cfg.ParseQuery(QueryParams{Sort: "age", Order: "desc", Filter: "al", Page: "1", RowsPerPage: "5"})
	require.NoError(t, err)
	require.Equal(t, Query{Sort: SortKey{Field: "age", Direction: Desc}, Filter: "al", Page: Page{Index: 1, Size: 5}}, q)

	_, err = cfg.ParseQuery(QueryParams{Order: "sideways"})
	require.ErrorIs(t, err, ErrInvalidDirection)

	_, err = cfg.ParseQuery(QueryParams{RowsPerPage: "100"})
	require.ErrorIs(t, err, ErrInvalidPageSize)

	_, err = cfg.ParseQuery(QueryParams{Page: "x"})
	require.ErrorIs(t, err, ErrInvalidPageIndex)
}

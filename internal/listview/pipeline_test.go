package listview

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID     string
	Name   string
	Age    float64
	Status string
}

func rowConfig() Config[row] {
	return Config[row]{
		Fields: map[string]Accessor[row]{
			"name": func(r row) any { return r.Name },
			"age":  func(r row) any { return r.Age },
		},
		FilterField: func(r row) string { return r.Name },
		Status:      func(r row) string { return r.Status },
		DefaultSort: SortKey{Field: "name", Direction: Asc},
		DefaultSize: 25,
	}
}

func ids(rows []row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func query(field string, dir Direction, filter string, index, size int) Query {
	return Query{Sort: SortKey{Field: field, Direction: dir}, Filter: filter, Page: Page{Index: index, Size: size}}
}

func TestRender_SortsAscendingAndDescending(t *testing.T) {
	records := []row{
		{ID: "1", Name: "carol", Age: 30, Status: "active"},
		{ID: "2", Name: "alice", Age: 40, Status: "active"},
		{ID: "3", Name: "bob", Age: 20, Status: "active"},
	}
	cfg := rowConfig()

	asc := cfg.Render(records, query("name", Asc, "", 0, 25))
	if diff := cmp.Diff([]string{"2", "3", "1"}, ids(asc.Rows)); diff != "" {
		t.Fatalf("ascending order mismatch (-want +got):\n%s", diff)
	}

	desc := cfg.Render(records, query("age", Desc, "", 0, 25))
	if diff := cmp.Diff([]string{"2", "1", "3"}, ids(desc.Rows)); diff != "" {
		t.Fatalf("descending order mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_SortIsStableInBothDirections(t *testing.T) {
	records := []row{
		{ID: "a", Name: "x", Age: 1, Status: "active"},
		{ID: "b", Name: "y", Age: 2, Status: "active"},
		{ID: "c", Name: "x", Age: 3, Status: "active"},
		{ID: "d", Name: "y", Age: 4, Status: "active"},
		{ID: "e", Name: "x", Age: 5, Status: "active"},
	}
	cfg := rowConfig()

	asc := cfg.Render(records, query("name", Asc, "", 0, 25))
	require.Equal(t, []string{"a", "c", "e", "b", "d"}, ids(asc.Rows))

	desc := cfg.Render(records, query("name", Desc, "", 0, 25))
	require.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(desc.Rows))
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	records := []row{
		{ID: "1", Name: "b", Status: "active"},
		{ID: "2", Name: "a", Status: "active"},
	}
	rowConfig().Render(records, query("name", Asc, "", 0, 25))
	require.Equal(t, []string{"1", "2"}, ids(records))
}

func TestRender_IsIdempotent(t *testing.T) {
	records := []row{
		{ID: "1", Name: "b", Status: "active"},
		{ID: "2", Name: "a", Status: "non-active"},
		{ID: "3", Name: "c", Status: "active"},
	}
	cfg := rowConfig()
	q := query("name", Desc, "", 0, 5)

	first := cfg.Render(records, q)
	second := cfg.Render(records, q)
	require.Equal(t, first, second)
}

func TestRender_FilterSkipsSorting(t *testing.T) {
	records := []row{
		{ID: "1", Name: "Zara Smith", Status: "active"},
		{ID: "2", Name: "adam smith", Status: "active"},
		{ID: "3", Name: "Jo Brown", Status: "active"},
		{ID: "4", Name: "SMITHERS", Status: "active"},
	}

	res := rowConfig().Render(records, query("name", Asc, "smith", 0, 25))
	require.Equal(t, []string{"1", "2", "4"}, ids(res.Rows))
	require.False(t, res.NotFound)
}

func TestRender_FilterWithNoMatch(t *testing.T) {
	records := []row{
		{ID: "1", Name: "alice", Status: "active"},
		{ID: "2", Name: "bob", Status: "active"},
		{ID: "3", Name: "carol", Status: "active"},
		{ID: "4", Name: "dave", Status: "active"},
		{ID: "5", Name: "erin", Status: "active"},
	}

	res := rowConfig().Render(records, query("name", Asc, "zzz", 0, 25))
	require.Empty(t, res.Rows)
	require.True(t, res.NotFound)
	require.Equal(t, 5, res.TotalCount)
}

func TestRender_ProjectsActiveRecords(t *testing.T) {
	records := []row{
		{ID: "1", Name: "a", Status: "active"},
		{ID: "2", Name: "b", Status: "non-active"},
		{ID: "3", Name: "c", Status: "banned"},
		{ID: "4", Name: "d", Status: "active"},
	}

	res := rowConfig().Render(records, query("name", Asc, "", 0, 25))
	require.Equal(t, []string{"1", "4"}, ids(res.Rows))
	require.Equal(t, 4, res.TotalCount, "total count is the unfiltered collection size")
	require.False(t, res.NotFound)
}

func TestRender_WithoutStatusKeepsEverything(t *testing.T) {
	cfg := rowConfig()
	cfg.Status = nil
	records := []row{
		{ID: "1", Name: "a", Status: "non-active"},
		{ID: "2", Name: "b"},
	}

	res := cfg.Render(records, query("name", Asc, "", 0, 5))
	require.Equal(t, []string{"1", "2"}, ids(res.Rows))
}

func TestRender_Windowing(t *testing.T) {
	var records []row
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		records = append(records, row{ID: name, Name: name, Status: "active"})
	}
	cfg := rowConfig()

	first := cfg.Render(records, query("name", Asc, "", 0, 5))
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(first.Rows))
	require.Zero(t, first.EmptyRowCount)

	second := cfg.Render(records, query("name", Asc, "", 1, 5))
	require.Equal(t, []string{"f", "g"}, ids(second.Rows))
	require.Equal(t, 3, second.EmptyRowCount)

	for index := 2; index < 6; index++ {
		res := cfg.Render(records, query("name", Asc, "", index, 5))
		require.Empty(t, res.Rows, "page %d", index)
		require.GreaterOrEqual(t, res.EmptyRowCount, 0)
	}
}

func TestRender_EmptyRowsUseCollectionSize(t *testing.T) {
	records := []row{
		{ID: "1", Name: "a", Status: "active"},
		{ID: "2", Name: "b", Status: "non-active"},
		{ID: "3", Name: "c", Status: "non-active"},
		{ID: "4", Name: "d", Status: "non-active"},
		{ID: "5", Name: "e", Status: "non-active"},
		{ID: "6", Name: "f", Status: "non-active"},
	}

	res := rowConfig().Render(records, query("name", Asc, "", 1, 5))
	require.Empty(t, res.Rows)
	require.Equal(t, 4, res.EmptyRowCount)
}

func TestRender_UnknownSortFieldKeepsInputOrder(t *testing.T) {
	records := []row{
		{ID: "1", Name: "b", Status: "active"},
		{ID: "2", Name: "a", Status: "active"},
	}

	res := rowConfig().Render(records, query("missing", Desc, "", 0, 5))
	require.Equal(t, []string{"1", "2"}, ids(res.Rows))
}

func TestRender_EmptySnapshot(t *testing.T) {
	res := rowConfig().Render(nil, query("name", Asc, "", 0, 5))
	require.NotNil(t, res.Rows)
	require.Empty(t, res.Rows)
	require.True(t, res.NotFound)
	require.Zero(t, res.TotalCount)
}

func TestComparator_Kinds(t *testing.T) {
	asc := Comparator(Asc)
	desc := Comparator(Desc)

	require.Equal(t, -1, asc("a", "b"))
	require.Equal(t, 1, desc("a", "b"))
	require.Equal(t, -1, asc(1, 2.5))
	require.Equal(t, 0, asc(true, true))
	require.Equal(t, -1, asc(false, true))
	require.Equal(t, 0, asc("a", 1), "mixed kinds compare equal")
	require.Equal(t, 0, asc(nil, nil))
}

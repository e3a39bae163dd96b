package query

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceExecutor simula el almacenamiento sobre n filas numeradas desde 1.
func sliceExecutor(n int) Executor[int] {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i + 1
	}
	return func(_ context.Context, _ *Select, p OffsetPagination) ([]int, int, error) {
		if p.Offset >= len(rows) {
			return nil, len(rows), nil
		}
		end := p.Offset + p.Limit
		if end > len(rows) {
			end = len(rows)
		}
		return rows[p.Offset:end], len(rows), nil
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name        string
		params      Map
		wantItems   []int
		wantPage    int
		wantPerPage int
		wantPages   int
	}{
		{"tercera página parcial", Map{"page": "3", "per_page": "10"}, []int{21, 22, 23, 24, 25}, 3, 10, 3},
		{"valores por defecto", Map{}, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 1, 10, 3},
		{"no enteros vuelven al defecto", Map{"page": "abc", "per_page": "x"}, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 1, 10, 3},
		{"page cero se trata como 1", Map{"page": "0", "per_page": "20"}, nil, 1, 20, 2},
		{"más allá del final", Map{"page": "9", "per_page": "10"}, []int{}, 9, 10, 3},
		{"page enorme no desborda el offset", Map{"page": strconv.Itoa(math.MaxInt / 5), "per_page": "10"}, []int{}, math.MaxInt / 5, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Paginate(context.Background(), From(testArticles, Postgres), sliceExecutor(25), tt.params, 10)
			require.NoError(t, err)

			if tt.wantItems != nil {
				assert.Equal(t, tt.wantItems, page.Items)
			}
			assert.Equal(t, 25, page.Total)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantPerPage, page.PerPage)
			assert.Equal(t, tt.wantPages, page.Pages)
		})
	}
}

func TestPaginate_HugePageKeepsOffsetPositive(t *testing.T) {
	var seen OffsetPagination
	var rowsSQL string
	exec := func(_ context.Context, q *Select, p OffsetPagination) ([]int, int, error) {
		seen = p
		sql, _, err := q.ToSQL(p)
		require.NoError(t, err)
		rowsSQL = sql
		return nil, 3, nil
	}

	page, err := Paginate(context.Background(), From(testArticles, Postgres), exec,
		Map{"page": strconv.Itoa(math.MaxInt/10 + 5), "per_page": "10"}, 10)

	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, seen.Offset)
	assert.Contains(t, rowsSQL, "OFFSET "+strconv.Itoa(math.MaxInt))
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
	assert.Equal(t, math.MaxInt, Offset(math.MaxInt, 2))
	assert.Equal(t, math.MaxInt, Offset(math.MaxInt/10+2, 10))
}

func TestPaginate_EmptyResult(t *testing.T) {
	page, err := Paginate(context.Background(), From(testArticles, Postgres), sliceExecutor(0), Map{}, 10)

	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.Pages)
}

func TestPaginate_NoUpperBoundByDefault(t *testing.T) {
	page, err := Paginate(context.Background(), From(testArticles, Postgres), sliceExecutor(5), Map{"per_page": "100000"}, 10)
	require.NoError(t, err)
	assert.Equal(t, 100000, page.PerPage)

	page, err = Paginate(context.Background(), From(testArticles, Postgres), sliceExecutor(5), Map{"per_page": "100000"}, 10, WithMaxPerPage(50))
	require.NoError(t, err)
	assert.Equal(t, 50, page.PerPage)
}

func TestPaginate_StorageErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	exec := func(context.Context, *Select, OffsetPagination) ([]int, int, error) { return nil, 0, boom }

	_, err := Paginate[int](context.Background(), From(testArticles, Postgres), exec, Map{}, 10)

	assert.ErrorIs(t, err, boom)
}

func TestPage_As(t *testing.T) {
	env := Page[int]{Items: []int{1}, Total: 1, Page: 1, PerPage: 10, Pages: 1}.As("articles")

	assert.Equal(t, []int{1}, env["articles"])
	assert.Equal(t, 1, env["pages"])
	assert.NotContains(t, env, "items")
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 2, PageCount(11, 10))
	assert.Equal(t, 3, PageCount(25, 10))
}

func TestApplySorting(t *testing.T) {
	sortable := []string{"title", "created_at", "updated_at"}

	tests := []struct {
		name   string
		params Map
		def    string
		want   []string
	}{
		{"multi clave en orden", Map{"sort_by": "-created_at,title"}, "", []string{"articles.created_at DESC", "articles.title ASC"}},
		{"campo desconocido se descarta", Map{"sort_by": "unknown_field"}, "-created_at", nil},
		{"sin parámetro usa el defecto", Map{}, "-created_at", []string{"articles.created_at DESC"}},
		{"sin parámetro ni defecto no ordena", Map{}, "", nil},
		{"duplicados se mantienen", Map{"sort_by": "title, -title"}, "", []string{"articles.title ASC", "articles.title DESC"}},
		{"vacío explícito no ordena", Map{"sort_by": ""}, "-created_at", nil},
		{"no ordenable aunque exista", Map{"sort_by": "content,title"}, "", []string{"articles.title ASC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ApplySorting(From(testArticles, Postgres), sortable, tt.def, tt.params)
			assert.Equal(t, tt.want, q.Orders())
		})
	}
}

func TestList_ComposesPipeline(t *testing.T) {
	var seen *Select
	exec := func(_ context.Context, q *Select, p OffsetPagination) ([]string, int, error) {
		seen = q
		assert.Equal(t, OffsetPagination{Limit: 5, Offset: 5}, p)
		return []string{"a"}, 6, nil
	}
	listing := Listing{
		Filters:        Fields("title"),
		Sortable:       []string{"title"},
		DefaultSort:    "-title",
		DefaultPerPage: 5,
	}

	page, err := List[string](context.Background(), From(testArticles, SQLite), exec, Values{"title": {"go"}, "page": {"2"}}, listing)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Pages)
	require.NotNil(t, seen)
	assert.Len(t, seen.Predicates(), 1)
	assert.Equal(t, []string{"articles.title DESC"}, seen.Orders())
}

func TestValues_FirstValueWins(t *testing.T) {
	v := Values{"a": {"1", "2"}, "empty": {}}

	got, ok := v.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", got)

	_, ok = v.Get("empty")
	assert.False(t, ok)
	_, ok = v.Get("missing")
	assert.False(t, ok)
}

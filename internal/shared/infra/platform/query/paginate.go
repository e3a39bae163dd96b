package query

import (
	"context"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Page es el sobre de una consulta paginada.
type Page[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Pages   int `json:"pages"`
}

// As devuelve el sobre con los items bajo la clave indicada ("articles", "users"...).
func (p Page[T]) As(key string) map[string]interface{} {
	return map[string]interface{}{
		key:        p.Items,
		"total":    p.Total,
		"page":     p.Page,
		"per_page": p.PerPage,
		"pages":    p.Pages,
	}
}

// Executor ejecuta la consulta con la ventana dada y devuelve las filas y el total filtrado.
type Executor[T any] func(ctx context.Context, q *Select, p OffsetPagination) ([]T, int, error)

// PageCount devuelve ceil(total/perPage), 0 cuando no hay filas.
func PageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// ParsePage lee page y per_page. Valores no enteros o menores que 1 vuelven al defecto.
func ParsePage(params Params, defaultPerPage int, opts ...Option) (page, perPage int) {
	o := newOptions(opts)
	page = intParam(params, "page", 1, o)
	perPage = intParam(params, "per_page", defaultPerPage, o)
	if o.maxPerPage > 0 && perPage > o.maxPerPage {
		o.dropped("per_page", "above max", zap.Int("max", o.maxPerPage))
		perPage = o.maxPerPage
	}
	return page, perPage
}

func intParam(params Params, key string, def int, o *options) int {
	raw, ok := params.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		o.dropped(key, "not a positive integer", zap.String("value", raw))
		return def
	}
	return n
}

// Offset devuelve (page-1)*perPage, saturado en math.MaxInt si desborda.
func Offset(page, perPage int) int {
	if page <= 1 || perPage <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// Paginate ejecuta q con offset (page-1)*per_page y arma el sobre.
func Paginate[T any](ctx context.Context, q *Select, exec Executor[T], params Params, defaultPerPage int, opts ...Option) (Page[T], error) {
	page, perPage := ParsePage(params, defaultPerPage, opts...)

	items, total, err := exec(ctx, q, OffsetPagination{Limit: perPage, Offset: Offset(page, perPage)})
	if err != nil {
		return Page[T]{}, err
	}
	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   PageCount(total, perPage),
	}, nil
}

package query

import "context"

// Listing declara cómo se filtra, ordena y pagina un endpoint de listado.
type Listing struct {
	Filters        FilterSpec
	Logic          LogicalOperator
	Sortable       []string
	DefaultSort    string
	DefaultPerPage int
}

// List aplica filtros, orden y paginación en ese orden.
func List[T any](ctx context.Context, q *Select, exec Executor[T], params Params, l Listing, opts ...Option) (Page[T], error) {
	logic := l.Logic
	if logic == "" {
		logic = OpAnd
	}
	q = ApplyFilters(q, l.Filters, params, logic, opts...)
	q = ApplySorting(q, l.Sortable, l.DefaultSort, params, opts...)
	return Paginate(ctx, q, exec, params, l.DefaultPerPage, opts...)
}

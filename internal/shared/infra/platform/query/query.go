package query

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// ---------------- Paginación y orden ----------------

// OffsetPagination define la ventana LIMIT/OFFSET que se aplica al ejecutar una consulta.
type OffsetPagination struct {
	Limit  int
	Offset int
}

// Sort representa una clave de ordenamiento.
type Sort struct {
	Field string
	Desc  bool
}

// ---------------- Dialecto ----------------

// Dialect selecciona el formato de placeholders y el operador de búsqueda insensible a mayúsculas.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Placeholder devuelve el formato de parámetros de squirrel para el dialecto.
func (d Dialect) Placeholder() sq.PlaceholderFormat {
	if d == Postgres {
		return sq.Dollar
	}
	return sq.Question
}

// contains construye un match insensible a mayúsculas. En SQLite LIKE ya lo es para ASCII.
func (d Dialect) contains(column, pattern string) sq.Sqlizer {
	if d == Postgres {
		return sq.ILike{column: pattern}
	}
	return sq.Like{column: pattern}
}

// ---------------- Select ----------------

// Select es la consulta componible sobre una entidad: filtros, joins y orden se acumulan
// y se traducen a SQL al ejecutar.
type Select struct {
	entity  *Entity
	dialect Dialect
	columns []string
	joins   []string
	where   []sq.Sqlizer
	orderBy []string
}

// From crea una consulta sobre la tabla de la entidad. Sin columnas selecciona "tabla.*".
func From(entity *Entity, dialect Dialect, columns ...string) *Select {
	if len(columns) == 0 {
		columns = []string{entity.Table + ".*"}
	}
	return &Select{entity: entity, dialect: dialect, columns: columns}
}

func (s *Select) Entity() *Entity {
	return s.entity
}

func (s *Select) Dialect() Dialect {
	return s.dialect
}

// Filter añade un predicado. Varios Filter se combinan con AND.
func (s *Select) Filter(pred sq.Sqlizer) *Select {
	s.where = append(s.where, pred)
	return s
}

// Join añade un INNER JOIN contra la tabla indicada.
func (s *Select) Join(table, on string) *Select {
	s.joins = append(s.joins, fmt.Sprintf("%s ON %s", table, on))
	return s
}

// OrderBy añade una clave de orden al final de la lista.
func (s *Select) OrderBy(col Column, desc bool) *Select {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	s.orderBy = append(s.orderBy, col.Qualified()+" "+dir)
	return s
}

// Joins devuelve las cláusulas JOIN acumuladas.
func (s *Select) Joins() []string {
	return append([]string(nil), s.joins...)
}

// Orders devuelve las cláusulas ORDER BY acumuladas.
func (s *Select) Orders() []string {
	return append([]string(nil), s.orderBy...)
}

// Predicates devuelve los predicados acumulados.
func (s *Select) Predicates() []sq.Sqlizer {
	return append([]sq.Sqlizer(nil), s.where...)
}

func (s *Select) base(columns ...string) sq.SelectBuilder {
	b := sq.Select(columns...).From(s.entity.Table).PlaceholderFormat(s.dialect.Placeholder())
	for _, j := range s.joins {
		b = b.Join(j)
	}
	for _, w := range s.where {
		b = b.Where(w)
	}
	return b
}

// ToSQL genera la consulta de filas con orden y ventana. Limit <= 0 no limita.
func (s *Select) ToSQL(p OffsetPagination) (string, []interface{}, error) {
	b := s.base(s.columns...)
	if len(s.orderBy) > 0 {
		b = b.OrderBy(s.orderBy...)
	}
	if p.Limit > 0 {
		b = b.Limit(uint64(p.Limit))
	}
	if p.Offset > 0 {
		b = b.Offset(uint64(p.Offset))
	}
	return b.ToSql()
}

// CountSQL genera el COUNT(*) sobre el mismo conjunto filtrado, sin orden ni ventana.
func (s *Select) CountSQL() (string, []interface{}, error) {
	return s.base("COUNT(*)").ToSql()
}

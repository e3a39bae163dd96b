package query

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

// ---------------- Tipos de filtro ----------------

// FilterType es el conjunto cerrado de filtros soportados.
type FilterType int

const (
	FilterFuzzy FilterType = iota + 1
	FilterExact
	// FilterArray descarta los tokens vacíos: "go," filtra solo por "go" y no casa con todo.
	FilterArray
	FilterPrefix
	FilterSuffix
	FilterBool
	FilterRange
	FilterEnum
	FilterRelation
)

func (t FilterType) String() string {
	switch t {
	case FilterFuzzy:
		return "fuzzy"
	case FilterExact:
		return "exact"
	case FilterArray:
		return "array"
	case FilterPrefix:
		return "prefix"
	case FilterSuffix:
		return "suffix"
	case FilterBool:
		return "bool"
	case FilterRange:
		return "range"
	case FilterEnum:
		return "enum"
	case FilterRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// LogicalOperator combina los predicados activos de una petición.
type LogicalOperator string

const (
	OpAnd LogicalOperator = "AND"
	OpOr  LogicalOperator = "OR"
)

// ParseLogic resuelve search_logic. Cualquier valor distinto de OR es AND.
func ParseLogic(raw string) LogicalOperator {
	if strings.ToUpper(strings.TrimSpace(raw)) == string(OpOr) {
		return OpOr
	}
	return OpAnd
}

// FieldFilter configura un campo filtrable. Field es a la vez el nombre del parámetro
// y, salvo en relaciones, el campo de la entidad.
type FieldFilter struct {
	Field        string
	Type         FilterType
	Cast         CastFunc
	Values       []string
	Model        *Entity
	RelatedField string
	RelationName string
}

// FilterSpec es la lista ordenada de campos filtrables.
type FilterSpec []FieldFilter

// Fields es la forma corta: todos los campos como fuzzy.
func Fields(names ...string) FilterSpec {
	spec := make(FilterSpec, 0, len(names))
	for _, n := range names {
		spec = append(spec, Fuzzy(n))
	}
	return spec
}

func Fuzzy(field string) FieldFilter  { return FieldFilter{Field: field, Type: FilterFuzzy} }
func Exact(field string) FieldFilter  { return FieldFilter{Field: field, Type: FilterExact} }
func Prefix(field string) FieldFilter { return FieldFilter{Field: field, Type: FilterPrefix} }
func Suffix(field string) FieldFilter { return FieldFilter{Field: field, Type: FilterSuffix} }
func Bool(field string) FieldFilter   { return FieldFilter{Field: field, Type: FilterBool} }

// Array combina con OR un contains por token separado por comas; los tokens vacíos se descartan.
func Array(field string) FieldFilter { return FieldFilter{Field: field, Type: FilterArray} }

// Range lee field_min y field_max. Sin cast se comparan como texto.
func Range(field string, cast CastFunc) FieldFilter {
	return FieldFilter{Field: field, Type: FilterRange, Cast: cast}
}

// Enum acepta solo los valores permitidos.
func Enum(field string, values ...string) FieldFilter {
	return FieldFilter{Field: field, Type: FilterEnum, Values: values}
}

// RelatedTo filtra por relatedField de model, uniendo la tabla una sola vez.
func RelatedTo(field string, model *Entity, relatedField string) FieldFilter {
	return FieldFilter{Field: field, Type: FilterRelation, Model: model, RelatedField: relatedField}
}

// Via fija la relación nombrada a usar para el join.
func (f FieldFilter) Via(relationName string) FieldFilter {
	f.RelationName = relationName
	return f
}

// JoinSet lleva las tablas relacionadas ya unidas en una aplicación de filtros.
type JoinSet map[string]struct{}

func (j JoinSet) Has(e *Entity) bool {
	_, ok := j[e.Table]
	return ok
}

func (j JoinSet) Add(e *Entity) {
	j[e.Table] = struct{}{}
}

// ---------------- Aplicación ----------------

// ApplyFilters traduce los parámetros presentes en predicados sobre la entidad de q.
// Nunca falla: entradas inválidas se descartan sin restringir la consulta.
// search_logic en params prevalece sobre logic.
func ApplyFilters(q *Select, spec FilterSpec, params Params, logic LogicalOperator, opts ...Option) *Select {
	o := newOptions(opts)
	if raw, ok := params.Get("search_logic"); ok {
		logic = ParseLogic(raw)
	}

	entity := q.Entity()
	joined := JoinSet{}
	var conds []sq.Sqlizer

	for _, f := range spec {
		if f.Type == FilterRange {
			conds = append(conds, rangeConds(entity, f, params, o)...)
			continue
		}

		value, ok := params.Get(f.Field)
		if !ok || value == "" {
			continue
		}

		if f.Type == FilterRelation {
			if c := relationCond(q, joined, f, value, o); c != nil {
				conds = append(conds, c)
			}
			continue
		}

		col, ok := entity.Column(f.Field)
		if !ok {
			o.dropped(f.Field, "unknown field")
			continue
		}
		name := col.Qualified()

		switch f.Type {
		case FilterFuzzy:
			conds = append(conds, q.dialect.contains(name, "%"+value+"%"))
		case FilterExact:
			conds = append(conds, sq.Eq{name: value})
		case FilterArray:
			var anyOf sq.Or
			for _, tok := range splitTokens(value) {
				anyOf = append(anyOf, q.dialect.contains(name, "%"+tok+"%"))
			}
			if len(anyOf) > 0 {
				conds = append(conds, anyOf)
			}
		case FilterPrefix:
			conds = append(conds, q.dialect.contains(name, value+"%"))
		case FilterSuffix:
			conds = append(conds, q.dialect.contains(name, "%"+value))
		case FilterBool:
			conds = append(conds, sq.Eq{name: isTruthy(value)})
		case FilterEnum:
			valid := allowed(splitTokens(value), f.Values)
			switch len(valid) {
			case 0:
				o.dropped(f.Field, "no allowed values", zap.String("value", value))
			case 1:
				conds = append(conds, sq.Eq{name: valid[0]})
			default:
				conds = append(conds, sq.Eq{name: valid})
			}
		default:
			o.dropped(f.Field, "unsupported filter type", zap.Stringer("type", f.Type))
		}
	}

	if len(conds) == 0 {
		return q
	}
	if logic == OpOr {
		return q.Filter(sq.Or(conds))
	}
	return q.Filter(sq.And(conds))
}

func rangeConds(entity *Entity, f FieldFilter, params Params, o *options) []sq.Sqlizer {
	col, ok := entity.Column(f.Field)
	if !ok {
		o.dropped(f.Field, "unknown field")
		return nil
	}
	cast := f.Cast
	if cast == nil {
		cast = CastString
	}

	var out []sq.Sqlizer
	if raw, ok := params.Get(f.Field + "_min"); ok && raw != "" {
		if v, err := cast(raw); err == nil {
			out = append(out, sq.GtOrEq{col.Qualified(): v})
		} else {
			o.dropped(f.Field+"_min", "cast failed", zap.Error(err))
		}
	}
	if raw, ok := params.Get(f.Field + "_max"); ok && raw != "" {
		if v, err := cast(raw); err == nil {
			out = append(out, sq.LtOrEq{col.Qualified(): v})
		} else {
			o.dropped(f.Field+"_max", "cast failed", zap.Error(err))
		}
	}
	return out
}

func relationCond(q *Select, joined JoinSet, f FieldFilter, value string, o *options) sq.Sqlizer {
	if f.Model == nil || f.RelatedField == "" {
		o.dropped(f.Field, "relation without model or related field")
		return nil
	}
	col, ok := f.Model.Column(f.RelatedField)
	if !ok {
		o.dropped(f.Field, "unknown related field", zap.String("related_field", f.RelatedField))
		return nil
	}

	if !joined.Has(f.Model) {
		var rel Relation
		if f.RelationName != "" {
			rel, ok = q.Entity().Relation(f.RelationName)
		} else {
			rel, ok = q.Entity().relationTo(f.Model)
		}
		if !ok {
			o.dropped(f.Field, "no join path", zap.String("model", f.Model.Table))
			return nil
		}
		q.Join(f.Model.Table, rel.On)
		joined.Add(f.Model)
	}

	return q.dialect.contains(col.Qualified(), "%"+value+"%")
}

func splitTokens(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func allowed(tokens, values []string) []string {
	var out []string
	for _, t := range tokens {
		for _, v := range values {
			if t == v {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	}
	return false
}

package query

import "strings"

// ParseSort interpreta "campo,-otro": el prefijo "-" indica orden descendente.
func ParseSort(raw string) []Sort {
	var out []Sort
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if strings.HasPrefix(tok, "-") {
			out = append(out, Sort{Field: tok[1:], Desc: true})
			continue
		}
		out = append(out, Sort{Field: tok})
	}
	return out
}

// ApplySorting ordena según sort_by o, si no viene, según defaultSort.
// Los campos fuera de sortable se descartan; los duplicados se mantienen.
func ApplySorting(q *Select, sortable []string, defaultSort string, params Params, opts ...Option) *Select {
	o := newOptions(opts)

	raw, ok := params.Get("sort_by")
	if !ok {
		raw = defaultSort
	}
	if raw == "" {
		return q
	}

	for _, s := range ParseSort(raw) {
		if !contains(sortable, s.Field) {
			o.dropped("sort_by", "field not sortable")
			continue
		}
		col, ok := q.Entity().Column(s.Field)
		if !ok {
			o.dropped("sort_by", "unknown field")
			continue
		}
		q.OrderBy(col, s.Desc)
	}
	return q
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

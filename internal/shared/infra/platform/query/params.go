package query

import "net/url"

// Params es la fuente de parámetros de la petición. Las claves distinguen mayúsculas.
type Params interface {
	Get(key string) (string, bool)
}

// Values adapta url.Values (p.ej. c.Request.URL.Query() en gin). Gana el primer valor.
type Values url.Values

func (v Values) Get(key string) (string, bool) {
	vs, ok := v[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Map adapta un mapa plano, útil en tests y en llamadas internas.
type Map map[string]string

func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CastFunc convierte el valor crudo de un límite de rango.
type CastFunc func(string) (interface{}, error)

func CastString(v string) (interface{}, error) {
	return v, nil
}

func CastInt(v string) (interface{}, error) {
	return strconv.Atoi(strings.TrimSpace(v))
}

func CastFloat(v string) (interface{}, error) {
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// CastTime acepta fechas ISO-8601 con o sin hora, fracción y zona. Sin zona se asume UTC.
func CastTime(v string) (interface{}, error) {
	v = strings.TrimSpace(v)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return nil, fmt.Errorf("invalid ISO datetime %q", v)
}

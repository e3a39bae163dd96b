package query

import "go.uber.org/zap"

// Option configura el pipeline de filtros, orden y paginación.
type Option func(*options)

type options struct {
	log        *zap.Logger
	maxPerPage int
}

// WithLogger registra en Debug cada entrada descartada (cast fallido, campo desconocido...).
// No altera la respuesta.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMaxPerPage limita per_page. 0 desactiva el límite.
func WithMaxPerPage(n int) Option {
	return func(o *options) {
		o.maxPerPage = n
	}
}

func newOptions(opts []Option) *options {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) dropped(param, reason string, fields ...zap.Field) {
	o.log.Debug("Parámetro de consulta descartado",
		append([]zap.Field{zap.String("param", param), zap.String("reason", reason)}, fields...)...)
}

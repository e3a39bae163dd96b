package utils

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Ternary es un operador ternario genérico
func Ternary[T any](condition bool, ifTrue, ifFalse T) T {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// Retry ejecuta fn hasta attempts veces con una espera fija entre intentos.
// Los errores envueltos con backoff.Permanent cortan los reintentos y se devuelven sin envolver.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(attempts-1)), ctx)
	return backoff.Retry(fn, b)
}

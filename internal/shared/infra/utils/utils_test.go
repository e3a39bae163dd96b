package utils

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRetry(t *testing.T) {
	t.Run("reintenta hasta tener éxito", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("agota los intentos", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), 2, time.Millisecond, func() error {
			calls++
			return errors.New("still down")
		})
		assert.EqualError(t, err, "still down")
		assert.Equal(t, 2, calls)
	})

	t.Run("error permanente no reintenta", func(t *testing.T) {
		notFound := errors.New("not found")
		calls := 0
		err := Retry(context.Background(), 5, time.Millisecond, func() error {
			calls++
			return backoff.Permanent(notFound)
		})
		assert.ErrorIs(t, err, notFound)
		assert.Equal(t, 1, calls)
	})
}

func TestUnmarshalAndHandle(t *testing.T) {
	var got struct{ ID int64 }
	UnmarshalAndHandle(zap.NewNop(), json.RawMessage(`{"ID":7}`), func(v struct{ ID int64 }) { got = v })
	assert.Equal(t, int64(7), got.ID)

	called := false
	UnmarshalAndHandle(zap.NewNop(), json.RawMessage(`nope`), func(struct{ ID int64 }) { called = true })
	assert.False(t, called)
}

func TestTernary(t *testing.T) {
	assert.Equal(t, "a", Ternary(true, "a", "b"))
	assert.Equal(t, 2, Ternary(false, 1, 2))
}

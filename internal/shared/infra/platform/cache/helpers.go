package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const asyncTimeout = 200 * time.Millisecond

// AsyncCacheSet actualiza la caché en background sin bloquear la petición.
// Usa un contexto propio: la escritura debe completarse aunque la petición ya haya terminado.
func AsyncCacheSet(cache Cache, key string, value interface{}, ttlSecs int, log *zap.Logger) {
	if cache == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		if err := cache.Set(ctx, key, value, ttlSecs); err != nil {
			log.Warn("Fallo al actualizar la caché", zap.String("key", key), zap.Error(err))
		}
	}()
}

// AsyncCacheDelete invalida una clave en background.
func AsyncCacheDelete(cache Cache, key string, log *zap.Logger) {
	if cache == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		if err := cache.Delete(ctx, key); err != nil {
			log.Warn("Fallo al borrar de la caché", zap.String("key", key), zap.Error(err))
		}
	}()
}

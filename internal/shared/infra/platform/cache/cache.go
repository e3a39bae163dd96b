package cache

import "context"

// Cache es una caché clave-valor con serialización JSON.
type Cache interface {
	// Get rellena dest (puntero) y devuelve true en un hit; (false, nil) en un miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set guarda val durante ttlSecs segundos. ttlSecs <= 0 usa el TTL por defecto de la implementación.
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error

	Delete(ctx context.Context, key string) error
}

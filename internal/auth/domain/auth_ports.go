package domain

import (
	"context"
	"errors"
	"time"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
)

// ---------- Errores de dominio ----------
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOldPassword = errors.New("invalid old password")
	ErrPasswordsRequired  = errors.New("old password and new password are required")
	ErrEmailRequired      = errors.New("email is required")

	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrTokenRevoked   = errors.New("token has been revoked")
	ErrRoleMismatch   = errors.New("role mismatch")
)

// ---------- Interfaces (Ports) ----------

// BlacklistRepository guarda los jti revocados.
type BlacklistRepository interface {
	// Add es idempotente por jti.
	Add(ctx context.Context, t RevokedToken) error
	Exists(ctx context.Context, jti string) (bool, error)
	// DeleteExpiredBefore borra las entradas que expiraron antes de cutoff.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenIssuer firma y verifica tokens.
type TokenIssuer interface {
	Issue(subject string, role accountDomain.Role, typ TokenType) (string, Principal, error)
	// Parse devuelve ErrWrongTokenType si el token es válido pero de otro tipo.
	Parse(raw string, expected TokenType) (Principal, error)
}

// RevokedCacheKey forma la key de caché de un jti revocado.
func RevokedCacheKey(jti string) string {
	return "auth:revoked:" + jti
}

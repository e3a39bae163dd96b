package domain

import (
	"strconv"
	"time"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
)

// TokenType distingue tokens de acceso y de refresco.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Principal son los claims ya verificados de un token.
type Principal struct {
	Subject   string
	Role      accountDomain.Role
	JTI       string
	Type      TokenType
	ExpiresAt time.Time
}

// AccountID interpreta el subject como ID numérico de la cuenta.
func (p Principal) AccountID() (int64, error) {
	return strconv.ParseInt(p.Subject, 10, 64)
}

// Revocation construye la entrada de lista negra de este token.
func (p Principal) Revocation(now time.Time) RevokedToken {
	return RevokedToken{
		JTI:       p.JTI,
		TokenType: p.Type,
		UserID:    p.Subject,
		UserType:  p.Role,
		RevokedAt: now,
		ExpiresAt: p.ExpiresAt,
	}
}

// RevokedToken es una fila de token_blacklist.
type RevokedToken struct {
	JTI       string
	TokenType TokenType
	UserID    string
	UserType  accountDomain.Role
	RevokedAt time.Time
	ExpiresAt time.Time
}

// TokenPair es la respuesta de login y refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

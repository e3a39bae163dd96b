package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	"github.com/davicafu/hexacms/internal/auth/domain"
)

// claims replica el formato de los tokens: sub, jti, exp, iat más type y user_type.
type claims struct {
	Type     domain.TokenType   `json:"type"`
	UserType accountDomain.Role `json:"user_type"`
	jwt.RegisteredClaims
}

// JWTIssuer firma tokens HS256 con un secreto compartido.
type JWTIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

var _ domain.TokenIssuer = (*JWTIssuer)(nil)

func NewJWTIssuer(secret string, accessTTL, refreshTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL, now: time.Now}
}

// WithClock fija el reloj (tests).
func (i *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	i.now = now
	return i
}

func (i *JWTIssuer) Issue(subject string, role accountDomain.Role, typ domain.TokenType) (string, domain.Principal, error) {
	ttl := i.accessTTL
	if typ == domain.RefreshToken {
		ttl = i.refreshTTL
	}

	now := i.now().UTC().Truncate(time.Second)
	p := domain.Principal{
		Subject:   subject,
		Role:      role,
		JTI:       uuid.NewString(),
		Type:      typ,
		ExpiresAt: now.Add(ttl),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Type:     typ,
		UserType: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        p.JTI,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(p.ExpiresAt),
		},
	})

	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", domain.Principal{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, p, nil
}

func (i *JWTIssuer) Parse(raw string, expected domain.TokenType) (domain.Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return domain.Principal{}, domain.ErrTokenExpired
	}
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if c.ID == "" || c.Subject == "" {
		return domain.Principal{}, domain.ErrInvalidToken
	}
	if c.Type != expected {
		return domain.Principal{}, domain.ErrWrongTokenType
	}

	return domain.Principal{
		Subject:   c.Subject,
		Role:      c.UserType,
		JTI:       c.ID,
		Type:      c.Type,
		ExpiresAt: c.ExpiresAt.Time.UTC(),
	}, nil
}

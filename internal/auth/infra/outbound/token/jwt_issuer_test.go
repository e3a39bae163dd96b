package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	"github.com/davicafu/hexacms/internal/auth/domain"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("secret", 15*time.Minute, 7*24*time.Hour)

	raw, issued, err := issuer.Issue("42", accountDomain.RoleAdmin, domain.RefreshToken)
	require.NoError(t, err)

	p, err := issuer.Parse(raw, domain.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, issued, p)
	assert.Equal(t, "42", p.Subject)
	assert.Equal(t, accountDomain.RoleAdmin, p.Role)
	assert.Len(t, p.JTI, 36)

	id, err := p.AccountID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestJWTIssuer_UniqueJTI(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Minute, time.Hour)

	_, a, err := issuer.Issue("1", accountDomain.RoleUser, domain.AccessToken)
	require.NoError(t, err)
	_, b, err := issuer.Issue("1", accountDomain.RoleUser, domain.AccessToken)
	require.NoError(t, err)

	assert.NotEqual(t, a.JTI, b.JTI)
}

func TestJWTIssuer_Rejections(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Minute, time.Hour)
	access, _, err := issuer.Issue("1", accountDomain.RoleUser, domain.AccessToken)
	require.NoError(t, err)

	t.Run("tipo incorrecto", func(t *testing.T) {
		_, err := issuer.Parse(access, domain.RefreshToken)
		assert.ErrorIs(t, err, domain.ErrWrongTokenType)
	})

	t.Run("otra firma", func(t *testing.T) {
		_, err := NewJWTIssuer("other", time.Minute, time.Hour).Parse(access, domain.AccessToken)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("basura", func(t *testing.T) {
		_, err := issuer.Parse("not.a.jwt", domain.AccessToken)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("expirado", func(t *testing.T) {
		past := NewJWTIssuer("secret", time.Minute, time.Hour).
			WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
		old, _, err := past.Issue("1", accountDomain.RoleUser, domain.AccessToken)
		require.NoError(t, err)

		_, err = issuer.Parse(old, domain.AccessToken)
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("algoritmo none", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "type": "access"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Parse(raw, domain.AccessToken)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

package application

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	"github.com/davicafu/hexacms/internal/auth/domain"
	sharedCache "github.com/davicafu/hexacms/internal/shared/infra/platform/cache"
)

// blacklistRetention es lo que se conserva una entrada de token_blacklist tras expirar.
const blacklistRetention = 30 * 24 * time.Hour

// AuthService define los casos de uso de autenticación para admins y usuarios.
type AuthService struct {
	accounts  map[accountDomain.Role]accountDomain.AccountRepository
	blacklist domain.BlacklistRepository
	tokens    domain.TokenIssuer
	cache     sharedCache.Cache
	log       *zap.Logger

	// shouldCleanup decide si un refresh purga la lista negra (1 de cada 20).
	shouldCleanup func() bool
	now           func() time.Time
}

func NewAuthService(
	accounts []accountDomain.AccountRepository,
	blacklist domain.BlacklistRepository,
	tokens domain.TokenIssuer,
	cache sharedCache.Cache,
	log *zap.Logger,
) *AuthService {
	byRole := make(map[accountDomain.Role]accountDomain.AccountRepository, len(accounts))
	for _, repo := range accounts {
		byRole[repo.Role()] = repo
	}
	return &AuthService{
		accounts:      byRole,
		blacklist:     blacklist,
		tokens:        tokens,
		cache:         cache,
		log:           log,
		shouldCleanup: func() bool { return rand.Intn(20) == 0 },
		now:           time.Now,
	}
}

// WithCleanupPolicy sustituye el sorteo de limpieza (tests).
func (s *AuthService) WithCleanupPolicy(fn func() bool) *AuthService {
	s.shouldCleanup = fn
	return s
}

// ---------------- Login / tokens ----------------

// Login valida las credenciales contra la tabla del rol y emite un par de tokens.
func (s *AuthService) Login(ctx context.Context, role accountDomain.Role, email, password string) (domain.TokenPair, *accountDomain.Account, error) {
	repo, ok := s.accounts[role]
	if !ok {
		return domain.TokenPair{}, nil, domain.ErrInvalidCredentials
	}

	account, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, accountDomain.ErrAccountNotFound) {
		return domain.TokenPair{}, nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.TokenPair{}, nil, err
	}
	if !account.CheckPassword(password) {
		s.log.Info("🔒 Login fallido", zap.String("role", string(role)), zap.Int64("id", account.ID))
		return domain.TokenPair{}, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(account.Subject(), role)
	if err != nil {
		return domain.TokenPair{}, nil, err
	}
	s.log.Info("🔑 Login correcto", zap.String("role", string(role)), zap.Int64("id", account.ID))
	return pair, account, nil
}

func (s *AuthService) issuePair(subject string, role accountDomain.Role) (domain.TokenPair, error) {
	access, _, err := s.tokens.Issue(subject, role, domain.AccessToken)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, _, err := s.tokens.Issue(subject, role, domain.RefreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rota el refresh token: revoca el presentado y emite un par nuevo.
func (s *AuthService) Refresh(ctx context.Context, p domain.Principal) (domain.TokenPair, error) {
	if err := s.revoke(ctx, p); err != nil {
		return domain.TokenPair{}, err
	}

	if s.shouldCleanup() {
		s.cleanup(ctx)
	}

	return s.issuePair(p.Subject, p.Role)
}

// cleanup purga entradas que expiraron hace más de 30 días. Los errores no se propagan.
func (s *AuthService) cleanup(ctx context.Context) {
	cutoff := s.now().UTC().Add(-blacklistRetention)
	deleted, err := s.blacklist.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		s.log.Warn("⚠️ Fallo al limpiar la lista negra de tokens", zap.Error(err))
		return
	}
	s.log.Debug("🧹 Lista negra de tokens purgada", zap.Int64("deleted", deleted))
}

// Logout revoca el token presentado y, si llega, el refresh token del mismo titular.
func (s *AuthService) Logout(ctx context.Context, p domain.Principal, refreshToken string) error {
	if err := s.revoke(ctx, p); err != nil {
		return err
	}
	if refreshToken == "" {
		return nil
	}

	rp, err := s.tokens.Parse(refreshToken, domain.RefreshToken)
	if err != nil {
		s.log.Debug("Refresh token ignorado en el logout", zap.Error(err))
		return nil
	}
	if rp.Subject != p.Subject || rp.Role != p.Role {
		s.log.Warn("⚠️ El refresh token del logout pertenece a otra cuenta", zap.String("subject", p.Subject))
		return nil
	}
	return s.revoke(ctx, rp)
}

func (s *AuthService) revoke(ctx context.Context, p domain.Principal) error {
	if err := s.blacklist.Add(ctx, p.Revocation(s.now().UTC())); err != nil {
		return err
	}
	if ttl := int(time.Until(p.ExpiresAt).Seconds()); ttl > 0 {
		sharedCache.AsyncCacheSet(s.cache, domain.RevokedCacheKey(p.JTI), true, ttl, s.log)
	}
	return nil
}

// ---------------- Verificación ----------------

// Authenticate verifica firma, expiración, tipo y lista negra.
func (s *AuthService) Authenticate(ctx context.Context, raw string, expected domain.TokenType) (domain.Principal, error) {
	p, err := s.tokens.Parse(raw, expected)
	if err != nil {
		return domain.Principal{}, err
	}

	revoked, err := s.IsRevoked(ctx, p.JTI)
	if err != nil {
		return domain.Principal{}, err
	}
	if revoked {
		return domain.Principal{}, domain.ErrTokenRevoked
	}
	return p, nil
}

// IsRevoked consulta primero la caché. Solo se cachean los positivos:
// un jti revocado no deja de estarlo.
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s.cache != nil {
		var hit bool
		if ok, _ := s.cache.Get(ctx, domain.RevokedCacheKey(jti), &hit); ok && hit {
			return true, nil
		}
	}
	return s.blacklist.Exists(ctx, jti)
}

// Authorize comprueba que el token pertenece al rol y que la cuenta sigue existiendo.
func (s *AuthService) Authorize(ctx context.Context, p domain.Principal, role accountDomain.Role) (*accountDomain.Account, error) {
	if p.Role != role {
		return nil, domain.ErrRoleMismatch
	}
	repo, ok := s.accounts[role]
	if !ok {
		return nil, domain.ErrRoleMismatch
	}

	id, err := p.AccountID()
	if err != nil {
		return nil, accountDomain.ErrAccountNotFound
	}
	return repo.GetByID(ctx, id)
}

// ---------------- Perfil ----------------

func (s *AuthService) ChangePassword(ctx context.Context, account *accountDomain.Account, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return domain.ErrPasswordsRequired
	}
	if !account.CheckPassword(oldPassword) {
		return domain.ErrInvalidOldPassword
	}
	if err := account.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.accounts[account.Role].UpdatePassword(ctx, account.ID, account.PasswordHash); err != nil {
		return err
	}

	s.log.Info("🔐 Contraseña cambiada", zap.String("role", string(account.Role)), zap.Int64("id", account.ID))
	return nil
}

// ForgotPassword no revela si el email existe. El envío del enlace queda fuera del servicio.
func (s *AuthService) ForgotPassword(ctx context.Context, role accountDomain.Role, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.ErrEmailRequired
	}

	repo, ok := s.accounts[role]
	if !ok {
		return nil
	}
	account, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.log.Info("📧 Solicitud de restablecimiento de contraseña", zap.String("role", string(role)), zap.Int64("id", account.ID))
	case errors.Is(err, accountDomain.ErrAccountNotFound):
		s.log.Debug("Restablecimiento pedido para un email desconocido", zap.String("role", string(role)))
	default:
		return err
	}
	return nil
}

package main

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	accountApp "github.com/davicafu/hexacms/internal/account/application"
	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	accountDB "github.com/davicafu/hexacms/internal/account/infra/outbound/db"
	articleApp "github.com/davicafu/hexacms/internal/article/application"
	articleDB "github.com/davicafu/hexacms/internal/article/infra/outbound/db"
	authApp "github.com/davicafu/hexacms/internal/auth/application"
	authDB "github.com/davicafu/hexacms/internal/auth/infra/outbound/db"
	"github.com/davicafu/hexacms/internal/auth/infra/outbound/token"
	sharedCache "github.com/davicafu/hexacms/internal/shared/infra/platform/cache"
	sharedDB "github.com/davicafu/hexacms/internal/shared/infra/platform/db"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// services agrupa los casos de uso ya cableados contra la base de datos.
type services struct {
	db       *sql.DB
	admins   *accountApp.AccountService
	users    *accountApp.AccountService
	articles *articleApp.ArticleService
	auth     *authApp.AuthService
}

// connect abre la base y construye los servicios. cache puede ser nil.
func (a *app) connect(ctx context.Context, cache sharedCache.Cache) (*services, error) {
	conn, err := sharedDB.Open(ctx, a.dialect(), a.cfg.DatabaseURL, a.log)
	if err != nil {
		return nil, err
	}

	var opts []query.Option
	opts = append(opts, query.WithLogger(a.log))
	if a.cfg.MaxPerPage > 0 {
		opts = append(opts, query.WithMaxPerPage(a.cfg.MaxPerPage))
	}

	adminRepo := accountDB.NewAccountRepo(conn, a.dialect(), accountDomain.RoleAdmin)
	userRepo := accountDB.NewAccountRepo(conn, a.dialect(), accountDomain.RoleUser)

	return &services{
		db:       conn,
		admins:   accountApp.NewAccountService(adminRepo, userRepo, a.log, opts...),
		users:    accountApp.NewAccountService(userRepo, adminRepo, a.log, opts...),
		articles: articleApp.NewArticleService(articleDB.NewArticleRepo(conn, a.dialect()), cache, a.log, a.cfg.CacheTTL, opts...),
		auth: authApp.NewAuthService(
			[]accountDomain.AccountRepository{adminRepo, userRepo},
			authDB.NewBlacklistRepo(conn, a.dialect()),
			token.NewJWTIssuer(a.cfg.JWTSecretKey, a.cfg.AccessTTL(), a.cfg.RefreshTTL()),
			cache,
			a.log,
		),
	}, nil
}

func (s *services) close(log *zap.Logger) {
	if err := s.db.Close(); err != nil {
		log.Warn("Error al cerrar la base de datos", zap.Error(err))
	}
}

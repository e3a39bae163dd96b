package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accountApp "github.com/davicafu/hexacms/internal/account/application"
	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	accountHttp "github.com/davicafu/hexacms/internal/account/infra/inbound/http"
	articleApp "github.com/davicafu/hexacms/internal/article/application"
	articleDomain "github.com/davicafu/hexacms/internal/article/domain"
	articleHttp "github.com/davicafu/hexacms/internal/article/infra/inbound/http"
	authApp "github.com/davicafu/hexacms/internal/auth/application"
	authHttp "github.com/davicafu/hexacms/internal/auth/infra/inbound/http"
)

// Services son los casos de uso que expone la API.
type Services struct {
	Auth     *authApp.AuthService
	Users    *accountApp.AccountService
	Articles *articleApp.ArticleService
}

// Options controla el middleware transversal.
type Options struct {
	AllowedOrigins []string
	LoginRateLimit float64
	LoginRateBurst int
	Log            *zap.Logger
}

// NewRouter monta /admin-api y /user-api sobre un engine nuevo.
func NewRouter(svc Services, opts Options) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(Recovery(log), RequestLogger(log), SecurityHeaders())

	router.GET("/", index)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rateLimit := RateLimit(opts.LoginRateLimit, opts.LoginRateBurst)

	// ---------------- /admin-api ----------------
	admin := router.Group("/admin-api", AdminCORS(opts.AllowedOrigins))
	admin.OPTIONS("/*path", noContent)
	adminGuards := authHttp.NewGuards(svc.Auth, accountDomain.RoleAdmin)
	authHttp.RegisterAuthRoutes(admin, authHttp.NewAuthHandler(svc.Auth, accountDomain.RoleAdmin), adminGuards, rateLimit)
	articleHttp.RegisterAdminArticleRoutes(admin,
		articleHttp.NewArticleHandler(svc.Articles, articleDomain.AdminListing), adminGuards.Protected()...)
	accountHttp.RegisterAccountRoutes(admin, accountHttp.NewAccountHandler(svc.Users), adminGuards.Protected()...)

	// ---------------- /user-api ----------------
	user := router.Group("/user-api", UserCORS())
	user.OPTIONS("/*path", noContent)
	userGuards := authHttp.NewGuards(svc.Auth, accountDomain.RoleUser)
	authHttp.RegisterAuthRoutes(user, authHttp.NewAuthHandler(svc.Auth, accountDomain.RoleUser), userGuards, rateLimit)
	articleHttp.RegisterUserArticleRoutes(user,
		articleHttp.NewArticleHandler(svc.Articles, articleDomain.UserListing), userGuards.Protected()...)

	return router
}

func index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "CMS API",
		"endpoints": gin.H{
			"admin": "/admin-api",
			"user":  "/user-api",
		},
		"info": "Admins and Users are in separate tables",
	})
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

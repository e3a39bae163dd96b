package http

import (
	"github.com/gin-gonic/gin"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	"github.com/davicafu/hexacms/internal/auth/application"
	"github.com/davicafu/hexacms/internal/auth/domain"
)

// Guards agrupa los middlewares de autenticación de un rol.
type Guards struct {
	Access  gin.HandlerFunc
	Refresh gin.HandlerFunc
	Role    gin.HandlerFunc
}

// NewGuards construye los guards del rol.
func NewGuards(service *application.AuthService, role accountDomain.Role) Guards {
	return Guards{
		Access:  RequireToken(service, domain.AccessToken),
		Refresh: RequireToken(service, domain.RefreshToken),
		Role:    RequireRole(service, role),
	}
}

// Protected son los guards de una ruta que exige una cuenta del rol con token de acceso.
func (g Guards) Protected() []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Access, g.Role}
}

// RegisterAuthRoutes monta las rutas de autenticación. rateLimit protege los endpoints
// que reciben credenciales; puede ser nil. forgot-password solo existe para admins.
func RegisterAuthRoutes(group *gin.RouterGroup, handler *AuthHandler, guards Guards, rateLimit gin.HandlerFunc) {
	limited := []gin.HandlerFunc{}
	if rateLimit != nil {
		limited = append(limited, rateLimit)
	}

	group.POST("/login", append(limited, handler.Login)...)
	if handler.role == accountDomain.RoleAdmin {
		group.POST("/forgot-password", append(limited, handler.ForgotPassword)...)
	}
	group.POST("/refresh", guards.Refresh, guards.Role, handler.Refresh)
	group.POST("/logout", guards.Access, handler.Logout)

	profile := group.Group("/profile", guards.Protected()...)
	{
		profile.GET("", handler.Profile)
		profile.PUT("/change-password", handler.ChangePassword)
	}
}

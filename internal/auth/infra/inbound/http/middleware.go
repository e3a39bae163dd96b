package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	"github.com/davicafu/hexacms/internal/auth/application"
	"github.com/davicafu/hexacms/internal/auth/domain"
	sharedUtils "github.com/davicafu/hexacms/internal/shared/infra/utils"
	"github.com/davicafu/hexacms/pkg/utils"
)

const (
	principalKey = "auth.principal"
	accountKey   = "auth.account"
)

// RequireToken valida el bearer token del tipo indicado y deja el Principal en el contexto.
func RequireToken(service *application.AuthService, typ domain.TokenType) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			utils.SendUnauthorized(c, "Missing Authorization Header")
			return
		}

		p, err := service.Authenticate(c.Request.Context(), raw, typ)
		switch {
		case err == nil:
			c.Set(principalKey, p)
			c.Next()
		case errors.Is(err, domain.ErrTokenRevoked):
			utils.SendCodedError(c, http.StatusUnauthorized, "Token has been revoked", "token_revoked")
		case errors.Is(err, domain.ErrTokenExpired):
			utils.SendCodedError(c, http.StatusUnauthorized, "Token has expired", "token_expired")
		case errors.Is(err, domain.ErrWrongTokenType):
			utils.SendError(c, http.StatusUnprocessableEntity, "Only "+string(typ)+" tokens are allowed")
		case errors.Is(err, domain.ErrInvalidToken):
			utils.SendError(c, http.StatusUnprocessableEntity, "Invalid token")
		default:
			utils.SendInternalServerError(c, err.Error())
		}
	}
}

// RequireRole exige un token del rol indicado cuya cuenta siga existiendo.
// Responde 403 "Unauthorized" o 404 "<Rol> not found".
func RequireRole(service *application.AuthService, role accountDomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			utils.SendUnauthorized(c, "Missing Authorization Header")
			return
		}

		account, err := service.Authorize(c.Request.Context(), p, role)
		switch {
		case err == nil:
			c.Set(accountKey, account)
			c.Next()
		case errors.Is(err, domain.ErrRoleMismatch):
			utils.SendForbidden(c, "Unauthorized")
		case errors.Is(err, accountDomain.ErrAccountNotFound):
			utils.SendNotFound(c, NotFoundMessage(role))
		default:
			utils.SendInternalServerError(c, err.Error())
		}
	}
}

// NotFoundMessage devuelve "Admin not found" o "User not found".
func NotFoundMessage(role accountDomain.Role) string {
	return sharedUtils.Ternary(role == accountDomain.RoleAdmin, "Admin not found", "User not found")
}

func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// AccountFrom devuelve la cuenta cargada por RequireRole.
func AccountFrom(c *gin.Context) (*accountDomain.Account, bool) {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil, false
	}
	a, ok := v.(*accountDomain.Account)
	return a, ok
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	"github.com/davicafu/hexacms/internal/auth/application"
	"github.com/davicafu/hexacms/internal/auth/domain"
	"github.com/davicafu/hexacms/pkg/utils"
)

// AuthHandler expone login, refresh, logout y perfil de un rol.
type AuthHandler struct {
	service *application.AuthService
	role    accountDomain.Role
}

func NewAuthHandler(service *application.AuthService, role accountDomain.Role) *AuthHandler {
	return &AuthHandler{service: service, role: role}
}

// ---------------- Handlers ----------------

// Login endpoint POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		utils.SendBadRequest(c, "Email and password are required")
		return
	}

	pair, account, err := h.service.Login(c.Request.Context(), h.role, req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		utils.SendUnauthorized(c, "Invalid email or password")
		return
	}
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	resp := gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}
	resp[string(h.role)] = account
	utils.SendSuccess(c, http.StatusOK, resp)
}

// ForgotPassword endpoint POST /forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "Email is required")
		return
	}

	err := h.service.ForgotPassword(c.Request.Context(), h.role, req.Email)
	if errors.Is(err, domain.ErrEmailRequired) {
		utils.SendBadRequest(c, "Email is required")
		return
	}
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendMessage(c, http.StatusOK, "If this email exists, a reset link will be sent")
}

// Refresh endpoint POST /refresh (refresh token + rol)
func (h *AuthHandler) Refresh(c *gin.Context) {
	p, _ := PrincipalFrom(c)

	pair, err := h.service.Refresh(c.Request.Context(), p)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendSuccess(c, http.StatusOK, pair)
}

// Logout endpoint POST /logout. Acepta opcionalmente {"refresh_token": "..."}.
func (h *AuthHandler) Logout(c *gin.Context) {
	p, _ := PrincipalFrom(c)

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	// El cuerpo es opcional.
	_ = c.ShouldBindJSON(&req)

	if err := h.service.Logout(c.Request.Context(), p, req.RefreshToken); err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendMessage(c, http.StatusOK, "Successfully logged out")
}

// Profile endpoint GET /profile
func (h *AuthHandler) Profile(c *gin.Context) {
	account, _ := AccountFrom(c)
	utils.SendSuccess(c, http.StatusOK, account)
}

// ChangePassword endpoint PUT /profile/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	account, _ := AccountFrom(c)

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "Old password and new password are required")
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), account, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		utils.SendMessage(c, http.StatusOK, "Password changed successfully")
	case errors.Is(err, domain.ErrPasswordsRequired):
		utils.SendBadRequest(c, "Old password and new password are required")
	case errors.Is(err, domain.ErrInvalidOldPassword):
		utils.SendUnauthorized(c, "Invalid old password")
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}

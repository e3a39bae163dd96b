package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexacms/internal/account/application"
	"github.com/davicafu/hexacms/internal/account/domain"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
	"github.com/davicafu/hexacms/pkg/utils"
)

// AccountHandler expone el CRUD de usuarios del panel de administración.
type AccountHandler struct {
	service  *application.AccountService
	notFound string
	listKey  string
}

func NewAccountHandler(service *application.AccountService) *AccountHandler {
	h := &AccountHandler{service: service, notFound: "User not found", listKey: "users"}
	if service.Role() == domain.RoleAdmin {
		h.notFound, h.listKey = "Admin not found", "admins"
	}
	return h
}

// ---------------- Handlers ----------------

// List endpoint GET /users
func (h *AccountHandler) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), query.Values(c.Request.URL.Query()))
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendSuccess(c, http.StatusOK, page.As(h.listKey))
}

// Create endpoint POST /users
func (h *AccountHandler) Create(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "Email and password are required")
		return
	}

	account, err := h.service.Create(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, account)
}

// Get endpoint GET /users/:id
func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	account, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, account)
}

// Update endpoint PUT /users/:id
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req struct {
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Name     *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "Request body must be valid JSON")
		return
	}

	account, err := h.service.Update(c.Request.Context(), id, application.AccountChanges{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, account)
}

// Delete endpoint DELETE /users/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.sendError(c, err)
		return
	}
	utils.SendMessage(c, http.StatusOK, "User deleted successfully")
}

// ---------------- Helpers ----------------

// parseID responde 404 si el id no es entero, igual que una ruta que no casa.
func (h *AccountHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		utils.SendNotFound(c, h.notFound)
		return 0, false
	}
	return id, true
}

func (h *AccountHandler) sendError(c *gin.Context, err error) {
	var taken *domain.EmailTakenError
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		utils.SendNotFound(c, h.notFound)
	case errors.Is(err, application.ErrCredentialsRequired):
		utils.SendBadRequest(c, "Email and password are required")
	case errors.As(err, &taken):
		utils.SendBadRequest(c, taken.Error())
	case errors.Is(err, domain.ErrInvalidAccount):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}

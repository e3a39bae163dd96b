package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexacms/internal/article/application"
	"github.com/davicafu/hexacms/internal/article/domain"
	authHttp "github.com/davicafu/hexacms/internal/auth/infra/inbound/http"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
	"github.com/davicafu/hexacms/pkg/utils"
)

// ArticleHandler expone los artículos. listing decide qué filtros admite el listado.
type ArticleHandler struct {
	service *application.ArticleService
	listing query.Listing
}

func NewArticleHandler(service *application.ArticleService, listing query.Listing) *ArticleHandler {
	return &ArticleHandler{service: service, listing: listing}
}

type articleRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Status  *string  `json:"status"`
	Tags    []string `json:"tags"`
}

func (r articleRequest) input() application.ArticleInput {
	return application.ArticleInput{Title: r.Title, Content: r.Content, Status: r.Status, Tags: r.Tags}
}

// ---------------- Handlers ----------------

// List endpoint GET /articles
func (h *ArticleHandler) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), query.Values(c.Request.URL.Query()), h.listing)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendSuccess(c, http.StatusOK, page.As("articles"))
}

// Create endpoint POST /articles
func (h *ArticleHandler) Create(c *gin.Context) {
	admin, ok := authHttp.AccountFrom(c)
	if !ok {
		utils.SendUnauthorized(c, "Missing Authorization Header")
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "Title and content are required")
		return
	}

	article, err := h.service.Create(c.Request.Context(), admin.ID, req.input())
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, article)
}

// Get endpoint GET /articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	article, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, article)
}

// Update endpoint PUT /articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "Request body must be valid JSON")
		return
	}

	article, err := h.service.Update(c.Request.Context(), id, req.input())
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, article)
}

// Delete endpoint DELETE /articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		sendError(c, err)
		return
	}
	utils.SendMessage(c, http.StatusOK, "Article deleted successfully")
}

// ---------------- Helpers ----------------

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		utils.SendNotFound(c, "Article not found")
		return 0, false
	}
	return id, true
}

func sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrArticleNotFound):
		utils.SendNotFound(c, "Article not found")
	case errors.Is(err, domain.ErrTitleContentRequired):
		utils.SendBadRequest(c, "Title and content are required")
	case errors.Is(err, domain.ErrInvalidArticle):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}

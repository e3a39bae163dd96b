package http

import "github.com/gin-gonic/gin"

// RegisterAdminArticleRoutes monta el CRUD completo del panel.
func RegisterAdminArticleRoutes(group *gin.RouterGroup, handler *ArticleHandler, guards ...gin.HandlerFunc) {
	articles := group.Group("/articles", guards...)
	{
		articles.GET("", handler.List)
		articles.POST("", handler.Create)
		articles.GET("/:id", handler.Get)
		articles.PUT("/:id", handler.Update)
		articles.DELETE("/:id", handler.Delete)
	}
}

// RegisterUserArticleRoutes monta la lectura pública para usuarios autenticados.
func RegisterUserArticleRoutes(group *gin.RouterGroup, handler *ArticleHandler, guards ...gin.HandlerFunc) {
	articles := group.Group("/articles", guards...)
	{
		articles.GET("", handler.List)
		articles.GET("/:id", handler.Get)
	}
}

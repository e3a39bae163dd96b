package http

import "github.com/gin-gonic/gin"

// RegisterAccountRoutes monta el CRUD bajo group. guards se aplican a todas las rutas.
func RegisterAccountRoutes(group *gin.RouterGroup, handler *AccountHandler, guards ...gin.HandlerFunc) {
	users := group.Group("/users", guards...)
	{
		users.GET("", handler.List)
		users.POST("", handler.Create)
		users.GET("/:id", handler.Get)
		users.PUT("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)
	}
}

// internal/api/routes/routes.go
package routes

import (
	"net/http"

	"nbn-order-service/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// Setup registers all routes on the router.
func Setup(router *gin.Engine, apps *handlers.ApplicationHandler) {
	router.Use(gin.Recovery())

	v1 := router.Group("/v1")
	v1.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	v1.GET("/applications", apps.List)
}

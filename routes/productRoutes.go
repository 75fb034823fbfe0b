package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/controllers"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/products", controllers.GetProducts)
	server.GET("/products/:slug", controllers.GetProductBySlug)
	server.GET("/categories", controllers.GetCategories)
}

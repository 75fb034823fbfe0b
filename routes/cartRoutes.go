package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/controllers"
)

func CartRoutes(server *gin.Engine) {
	server.GET("/cart", controllers.GetCart)
	server.POST("/cart/items", controllers.AddCartItem)
	server.PATCH("/cart/items", controllers.UpdateCartItem)
	server.DELETE("/cart/items/:productId", controllers.RemoveCartItem)
	server.DELETE("/cart", controllers.ClearCart)

	server.GET("/favorites", controllers.GetFavorites)
	server.POST("/favorites", controllers.AddFavorite)
	server.DELETE("/favorites/:productId", controllers.RemoveFavorite)
	server.DELETE("/favorites", controllers.ClearFavorites)
}

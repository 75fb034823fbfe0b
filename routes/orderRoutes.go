package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/controllers"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/orders", controllers.CreateOrder)
	server.GET("/checkout/token", controllers.IssueCheckoutToken)
	server.POST("/checkout/session", controllers.CreateCheckoutSession)
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/controllers"
	"github.com/linebygizia/gizia-api/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/admin", middlewares.RequireDatabase())
	{
		admin.POST("/login", controllers.Login)
		admin.POST("/logout", controllers.Logout)
	}

	protected := server.Group("/admin", middlewares.RequireDatabase(), middlewares.RequireAdmin())
	{
		protected.GET("/products", controllers.GetAdminProducts)
		protected.POST("/products", controllers.CreateProduct)
		protected.PATCH("/products/:id", controllers.UpdateProduct)
		protected.DELETE("/products/:id", controllers.DeleteProduct)
		protected.POST("/categories", controllers.CreateCategory)
		protected.POST("/upload", controllers.UploadImage)
		protected.GET("/orders", controllers.GetOrders)
		protected.GET("/orders/:orderId", controllers.GetOrderByID)
		protected.PATCH("/orders/:orderId", controllers.UpdateOrder)
		protected.GET("/customers", controllers.GetCustomers)
		protected.GET("/analytics", controllers.GetAnalytics)
	}
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Line by Gizia API.

The following are the endpoints for this API:

CATALOG
- GET "/products" - List products with filters, sorting and pagination
- GET "/products/:slug" - Get product by slug
- GET "/categories" - List categories

CART & FAVORITES
- GET "/cart" - Get the session cart
- POST "/cart/items" - Add an item to the cart
- PATCH "/cart/items" - Update an item quantity
- DELETE "/cart/items/:productId" - Remove an item
- DELETE "/cart" - Clear the cart
- GET "/favorites" - Get the session favorites
- POST "/favorites" - Add a favorite
- DELETE "/favorites/:productId" - Remove a favorite
- DELETE "/favorites" - Clear favorites

CHECKOUT
- POST "/checkout/session" - Open a hosted card payment session
- POST "/orders" - Place a cash-on-delivery order

ADMIN
- POST "/admin/login" - Admin sign-in
- POST "/admin/logout" - Admin sign-out
- GET "/admin/products" - List all products
- POST "/admin/products" - Create a product
- PATCH "/admin/products/:productId" - Update a product
- DELETE "/admin/products/:productId" - Delete a product
- POST "/admin/categories" - Create a category
- POST "/admin/upload" - Upload a product image
- GET "/admin/orders" - List orders
- GET "/admin/orders/:orderId" - Get order by ID
- PATCH "/admin/orders/:orderId" - Update order status
- GET "/admin/customers" - List customers
- GET "/admin/analytics" - Dashboard report`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/initializers"
)

// RequireDatabase rejects requests that need persistence when the server
// runs in demo mode without a database. Demo mode serves catalog reads and
// session carts only.
func RequireDatabase() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if initializers.DB == nil {
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": "This operation is unavailable in demo mode"})
			return
		}
		ctx.Next()
	}
}

package middlewares

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/controllers"
	"github.com/linebygizia/gizia-api/initializers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDatabaseGatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	admin := server.Group("/admin", RequireDatabase())
	admin.POST("/login", controllers.Login)
	admin.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return server
}

func TestRequireDatabaseRejectsWhenOffline(t *testing.T) {
	require.Nil(t, initializers.DB, "test expects no database connection")
	server := newDatabaseGatedRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// A valid login attempt in demo mode must fail cleanly, not panic against
// the missing connection.
func TestAdminLoginWithoutDatabase(t *testing.T) {
	require.Nil(t, initializers.DB, "test expects no database connection")
	server := newDatabaseGatedRouter()

	payload, err := json.Marshal(map[string]string{
		"email":    "admin@linebygizia.com",
		"password": "correct-horse",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() { server.ServeHTTP(rec, req) })
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

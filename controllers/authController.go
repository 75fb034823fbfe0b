package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/linebygizia/gizia-api/initializers"
	"github.com/linebygizia/gizia-api/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminSessionCookie = "admin_session"
	adminSessionTTL    = 7 * 24 * time.Hour

	msgInvalidInput       = "invalid input"
	msgInvalidCredentials = "invalid email or password"
	msgInternalError      = "Internal server error"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateAdminJWT(admin models.AdminUser) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"name":     admin.Name,
		"role":     "admin",
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(adminSessionTTL).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

// Login authenticates the back-office admin and sets the session cookie.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var admin models.AdminUser
	if err := initializers.DB.Where("email = ?", loginData.Email).First(&admin).Error; err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(admin.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	tokenString, err := generateAdminJWT(admin)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalError)
		return
	}

	ctx.SetCookie(AdminSessionCookie, tokenString, int(adminSessionTTL.Seconds()), "/", "", false, true)
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Logged in successfully.",
		"admin":   gin.H{"email": admin.Email, "name": admin.Name},
	})
}

// Logout clears the admin session cookie.
func Logout(ctx *gin.Context) {
	ctx.SetCookie(AdminSessionCookie, "", -1, "/", "", false, true)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Logged out successfully."})
}

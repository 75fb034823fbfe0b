package initializers

import (
	"errors"
	"log"
	"os"

	"github.com/linebygizia/gizia-api/models"
	"github.com/linebygizia/gizia-api/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SyncDatabase() {
	if DB == nil {
		return
	}

	err := DB.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
		&models.AdminUser{},
		&store.ClientState{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	bootstrapAdmin()
	log.Println("Database synced successfully.")
}

// bootstrapAdmin creates the back-office account from the environment on
// first start.
func bootstrapAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var existing models.AdminUser
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Admin lookup error:", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("Admin password hash error:", err)
		return
	}

	admin := models.AdminUser{Name: "Line by Gizia Admin", Email: email, Password: string(hash)}
	if err := DB.Create(&admin).Error; err != nil {
		log.Println("Admin bootstrap error:", err)
	}
}

package initializers

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
}

// DemoMode reports whether catalog reads should be served from the
// built-in fixture dataset instead of the database.
func DemoMode() bool {
	return os.Getenv("DEMO_MODE") == "true" || os.Getenv("DB_DSN") == ""
}

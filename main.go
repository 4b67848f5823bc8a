package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/platefront/restaurant-platform/config"
	"github.com/platefront/restaurant-platform/middlewares"
	"github.com/platefront/restaurant-platform/models"
	"github.com/platefront/restaurant-platform/realtime"
	"github.com/platefront/restaurant-platform/router"
	"github.com/platefront/restaurant-platform/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	hub := realtime.NewHub()

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, hub)
	r.Use(rateLimiter.RateLimit())
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Table{},
		&models.CategoryGroup{},
		&models.Category{},
		&models.MenuItem{},
		&models.MenuItemVariety{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

package main

import (
	"catalog/backend/internal/config"
	"catalog/backend/internal/database"
	"catalog/backend/internal/handler"
	"catalog/backend/internal/logging"

	"github.com/gin-gonic/gin"
)

func init() {
	config.LoadConfig()
}

// @title           Catalog API
// @version         1.0
// @description     Products, categories and tags for the catalog backend.
// @host            localhost:8080
// @BasePath        /api
func main() {
	cfg := config.AppConfig
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Info("Database migrated successfully.")
	}

	router := handler.NewRouter(db, log)

	addr := ":" + cfg.Port
	log.Infof("Server is running on %s", addr)
	log.Infof("Swagger UI is available at http://localhost%s/swagger/index.html", addr)
	log.Fatal(router.Run(addr))
}

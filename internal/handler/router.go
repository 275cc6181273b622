package handler

import (
	"net/http"

	"catalog/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "catalog/backend/docs" // registers the generated OpenAPI document
)

func init() {
	// Prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// NewRouter wires the repositories over db into a gin engine serving the
// catalog API under /api, the Swagger UI and a health check.
func NewRouter(db *gorm.DB, log *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	NewProductHandler(repository.NewProductRepository(db, log), log).RegisterRoutes(api)
	NewCategoryHandler(repository.NewCategoryRepository(db, log), log).RegisterRoutes(api)
	NewTagHandler(repository.NewTagRepository(db, log), log).RegisterRoutes(api)

	return router
}

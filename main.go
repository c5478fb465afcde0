package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/thao-tran/glowcare-admin-api/config"
	"github.com/thao-tran/glowcare-admin-api/controllers"
	"github.com/thao-tran/glowcare-admin-api/middleware"
	"github.com/thao-tran/glowcare-admin-api/models"
	"github.com/thao-tran/glowcare-admin-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting GlowCare Admin API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Account{},
		&models.Customer{},
		&models.Brand{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderDetail{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed image storage; product image endpoints report
	// an internal error if the bucket is not configured
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set, product image uploads disabled")
	}

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires the HTTP surface: public health endpoints and the
// admin group behind bearer auth plus the admin role gate
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)
	}

	// Admin routes: the role gate runs once for the whole group, ahead of
	// every handler
	admin := router.Group("/api/admin")
	admin.Use(middleware.EnsureValidToken(cfg))
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/customers", controllers.ListCustomers)
		admin.GET("/customers/:id", controllers.GetCustomer)
		admin.PATCH("/customers/:id/status", controllers.UpdateCustomerStatus)

		admin.GET("/analytics/sales", controllers.GetSalesAnalytics)
		admin.GET("/analytics/products", controllers.GetProductAnalytics)

		admin.GET("/products", controllers.ListProducts)
		admin.POST("/products", controllers.CreateProduct)
		admin.GET("/products/:id", controllers.GetProduct)
		admin.PUT("/products/:id", controllers.UpdateProduct)
		admin.DELETE("/products/:id", controllers.DeleteProduct)
		admin.POST("/products/:id/image", controllers.UploadProductImage)

		admin.GET("/brands", controllers.ListBrands)
		admin.GET("/categories", controllers.ListCategories)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "GlowCare Admin API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to get database instance",
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "database connection failed",
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to query tables",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}

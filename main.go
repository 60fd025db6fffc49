package main

import (
	"net/http"

	"ecommerce-api/config"
	"ecommerce-api/handlers"
	"ecommerce-api/routes"
	"ecommerce-api/seed"
	"ecommerce-api/services"
	"ecommerce-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	cfg.SetupLogger()
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	if err := seed.Run(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	disk := storage.NewDisk(cfg.StorageDir)

	tokens := services.NewTokenService(db, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	auth := services.NewAuthService(db, tokens)
	users := services.NewUserService(db)
	locations := services.NewLocationService(db)
	orders := services.NewOrderService(db, users, locations)
	types := services.NewProductTypeService(db, disk)
	categories := services.NewCategoryService(db, disk)
	products := services.NewProductService(db, types, categories, disk)
	roles := services.NewRoleService(db)

	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "E-Commerce API",
			"version": "1.0.0",
		})
	})

	// uploaded product and category images
	r.Static("/storage", cfg.StorageDir)

	routes.SetupRoutes(r, routes.Handlers{
		Auth:         handlers.NewAuthHandler(auth),
		Users:        handlers.NewUserHandler(users),
		Products:     handlers.NewProductHandler(products),
		Categories:   handlers.NewCategoryHandler(categories),
		Types:        handlers.NewProductTypeHandler(types),
		Roles:        handlers.NewRoleHandler(roles),
		Orders:       handlers.NewOrderHandler(orders),
		Locations:    handlers.NewLocationHandler(locations),
		TokenService: tokens,
	})

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"linkfolio/backend/config"
	"linkfolio/backend/database"
	"linkfolio/backend/routes"
	"linkfolio/backend/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	store := database.Open(ctx, cfg)
	defer store.Close(ctx)

	enhancer, err := services.NewEnhancer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("ai client error: %v", err)
	}
	profiles := services.NewProfileService(enhancer)

	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})
	routes.Register(r, cfg, store, profiles, enhancer)
	log.Printf("server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package main

import (
	"net/http"

	"campus-eats-api/config"
	"campus-eats-api/logging"
	"campus-eats-api/metrics"
	"campus-eats-api/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		return
	}
	log.Info("database connected and migrated", "path", cfg.DBPath)

	r := gin.Default()
	r.Use(cors.Default())
	r.Use(metrics.Middleware())

	r.GET("/metrics", metrics.Handler())
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
	})

	routes.SetupRoutes(r, db, cfg, log)

	log.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
	}
}

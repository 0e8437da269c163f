package routes

import (
	"log/slog"

	"campus-eats-api/config"
	"campus-eats-api/handlers"
	"campus-eats-api/middleware"
	"campus-eats-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes wires every endpoint. The store handle and config are injected
// into each handler here; no package holds them globally.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, log *slog.Logger) {
	authHandler := &handlers.AuthHandler{DB: db, JWTSecret: cfg.JWTSecret, Log: log}
	restaurantHandler := &handlers.RestaurantHandler{DB: db, Log: log}
	menuHandler := &handlers.MenuHandler{DB: db, Log: log}
	orderHandler := &handlers.OrderHandler{DB: db, Log: log}

	authRequired := middleware.AuthRequired(cfg.JWTSecret)
	vendorOnly := middleware.RoleRequired(models.RoleVendor)
	studentOnly := middleware.RoleRequired(models.RoleStudent)

	api := r.Group("/api")

	// ── Public routes ──────────────────────────────────────────────
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/restaurants", restaurantHandler.ListRestaurants)
	api.GET("/restaurants/:id", restaurantHandler.GetRestaurant)
	api.GET("/menu/restaurant/:restaurantId", menuHandler.GetMenuItems)
	api.GET("/orders/status-flow", orderHandler.GetStatusFlow)

	// ── Authenticated routes ───────────────────────────────────────
	api.GET("/auth/profile", authRequired, authHandler.GetProfile)
	api.GET("/orders/:id", authRequired, orderHandler.GetOrder)

	// ── Vendor routes ──────────────────────────────────────────────
	api.GET("/restaurants/vendor/my-restaurant", authRequired, vendorOnly, restaurantHandler.GetMyRestaurant)
	api.POST("/restaurants", authRequired, vendorOnly, restaurantHandler.CreateRestaurant)
	api.PUT("/restaurants/:id", authRequired, vendorOnly, restaurantHandler.UpdateRestaurant)

	api.POST("/menu", authRequired, vendorOnly, menuHandler.CreateMenuItem)
	api.PUT("/menu/:id", authRequired, vendorOnly, menuHandler.UpdateMenuItem)
	api.DELETE("/menu/:id", authRequired, vendorOnly, menuHandler.DeleteMenuItem)

	api.GET("/orders/vendor/orders", authRequired, vendorOnly, orderHandler.GetVendorOrders)
	api.PUT("/orders/:id/status", authRequired, vendorOnly, orderHandler.UpdateOrderStatus)

	// ── Student routes ─────────────────────────────────────────────
	api.POST("/orders", authRequired, studentOnly, orderHandler.CreateOrder)
	api.GET("/orders/my-orders", authRequired, studentOnly, orderHandler.GetMyOrders)
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"campus-eats-api/middleware"
	"campus-eats-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RestaurantHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// ListRestaurants returns all active restaurants with vendor contact info.
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	err := h.DB.Preload("Vendor").
		Where("is_active = ?", true).
		Find(&restaurants).Error
	if err != nil {
		serverError(c, h.Log, "list restaurants", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a restaurant with its available menu items.
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	err := h.DB.Preload("Vendor").
		Preload("MenuItems", "is_available = ?", true).
		First(&restaurant, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		serverError(c, h.Log, "get restaurant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMyRestaurant returns the vendor's own restaurant with the full menu,
// unavailable items included.
func (h *RestaurantHandler) GetMyRestaurant(c *gin.Context) {
	vendorID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	err := h.DB.Preload("MenuItems").
		Where("vendor_id = ?", vendorID).
		First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for this vendor"})
			return
		}
		serverError(c, h.Log, "get vendor restaurant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

type CreateRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
}

// CreateRestaurant creates the vendor's restaurant. Each vendor may own at
// most one.
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	vendorID := middleware.GetUserID(c)

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := vendorRestaurant(h.DB, vendorID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Vendor already has a restaurant"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(c, h.Log, "create restaurant lookup", err)
		return
	}

	restaurant := models.Restaurant{
		VendorID:    vendorID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if err := h.DB.Create(&restaurant).Error; err != nil {
		serverError(c, h.Log, "create restaurant", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created successfully", "restaurant": restaurant})
}

// UpdateRestaurantRequest uses pointer fields so an omitted field and an
// explicit zero value are distinct: is_active=false must persist, while an
// absent is_active leaves the stored value alone.
type UpdateRestaurantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateRestaurant applies a partial update to the vendor's restaurant.
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	vendorID := middleware.GetUserID(c)

	restaurant, err := vendorOwnedRestaurant(h.DB, c.Param("id"), vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found or unauthorized"})
			return
		}
		serverError(c, h.Log, "update restaurant lookup", err)
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant name cannot be empty"})
			return
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := h.DB.Model(restaurant).Updates(updates).Error; err != nil {
			serverError(c, h.Log, "update restaurant", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated successfully", "restaurant": restaurant})
}

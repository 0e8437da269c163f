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

type MenuHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// GetMenuItems returns every menu item of a restaurant (public).
func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	var items []models.MenuItem
	err := h.DB.Where("restaurant_id = ?", c.Param("restaurantId")).Find(&items).Error
	if err != nil {
		serverError(c, h.Log, "list menu items", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu_items": items})
}

type CreateMenuItemRequest struct {
	RestaurantID uint    `json:"restaurant_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"image_url"`
}

// CreateMenuItem adds an item to a restaurant the vendor owns.
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	vendorID := middleware.GetUserID(c)

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	err := h.DB.Where("id = ? AND vendor_id = ?", req.RestaurantID, vendorID).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized or restaurant not found"})
			return
		}
		serverError(c, h.Log, "create menu item lookup", err)
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		IsAvailable:  true,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		serverError(c, h.Log, "create menu item", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created successfully", "menu_item": item})
}

// UpdateMenuItemRequest mirrors UpdateRestaurantRequest: pointer fields keep
// "absent" and "zero" apart, so price=0 and is_available=false persist.
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
	IsAvailable *bool    `json:"is_available"`
}

// UpdateMenuItem applies a partial update; ownership is re-verified through
// the restaurant join on every call.
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	vendorID := middleware.GetUserID(c)

	item, err := vendorMenuItem(h.DB, c.Param("id"), vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found or unauthorized"})
			return
		}
		serverError(c, h.Log, "update menu item lookup", err)
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item name cannot be empty"})
			return
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
			return
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if len(updates) > 0 {
		if err := h.DB.Model(item).Updates(updates).Error; err != nil {
			serverError(c, h.Log, "update menu item", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated successfully", "menu_item": item})
}

// DeleteMenuItem removes a menu item the vendor owns.
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	vendorID := middleware.GetUserID(c)

	item, err := vendorMenuItem(h.DB, c.Param("id"), vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found or unauthorized"})
			return
		}
		serverError(c, h.Log, "delete menu item lookup", err)
		return
	}

	if err := h.DB.Delete(item).Error; err != nil {
		serverError(c, h.Log, "delete menu item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

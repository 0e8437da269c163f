package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"campus-eats-api/middleware"
	"campus-eats-api/models"
	"campus-eats-api/statusflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

type OrderItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	RestaurantID    uint               `json:"restaurant_id" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string             `json:"delivery_address"`
	Notes           string             `json:"notes"`
}

// CreateOrder places a new order for the authenticated student.
//
// Every requested item must exist and be available; the first miss aborts the
// whole request before anything is written. Prices are snapshotted from the
// menu at this moment and never recomputed. The order row and its item rows
// are written in one transaction.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	studentID := middleware.GetUserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant and items are required"})
		return
	}

	var orderItems []models.OrderItem
	var totalAmount float64

	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		err := h.DB.Where("id = ? AND is_available = ?", reqItem.MenuItemID, true).First(&menuItem).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("Menu item %d not found or unavailable", reqItem.MenuItemID),
				})
				return
			}
			serverError(c, h.Log, "create order item lookup", err)
			return
		}

		itemTotal := menuItem.Price * float64(reqItem.Quantity)
		totalAmount += itemTotal
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   reqItem.Quantity,
			Price:      menuItem.Price,
		})
	}

	order := models.Order{
		StudentID:       studentID,
		RestaurantID:    req.RestaurantID,
		TotalAmount:     totalAmount,
		Status:          models.StatusPending,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		return tx.Create(&orderItems).Error
	})
	if err != nil {
		serverError(c, h.Log, "create order", err)
		return
	}

	// Respond with the id and computed total; the persisted row is not
	// re-read.
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order": gin.H{
			"id":           order.ID,
			"total_amount": totalAmount,
		},
	})
}

// GetMyOrders returns the student's orders, newest first, with line items and
// the restaurant's name.
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	studentID := middleware.GetUserID(c)

	var orders []models.Order
	err := h.DB.Preload("Items.MenuItem").Preload("Restaurant").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		serverError(c, h.Log, "list student orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetVendorOrders returns all orders against the vendor's restaurant, newest
// first, with line items and the student's name and phone.
func (h *OrderHandler) GetVendorOrders(c *gin.Context) {
	vendorID := middleware.GetUserID(c)

	restaurant, err := vendorRestaurant(h.DB, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for this vendor"})
			return
		}
		serverError(c, h.Log, "vendor orders lookup", err)
		return
	}

	var orders []models.Order
	err = h.DB.Preload("Items.MenuItem").Preload("Student").
		Where("restaurant_id = ?", restaurant.ID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		serverError(c, h.Log, "list vendor orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus sets a new status on an order against the vendor's
// restaurant. Any member of the status enum is accepted from any current
// state; only enum membership is validated.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	vendorID := middleware.GetUserID(c)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	order, err := vendorOrder(h.DB, c.Param("id"), vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found or unauthorized"})
			return
		}
		serverError(c, h.Log, "update order status lookup", err)
		return
	}

	if err := h.DB.Model(order).Update("status", req.Status).Error; err != nil {
		serverError(c, h.Log, "update order status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
}

// GetOrder returns a single order with its items. A student may view only
// their own order; a vendor only orders against their own restaurant. The
// existence check runs before the access rule, so a genuinely missing order
// is a 404 for everyone.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	callerID := middleware.GetUserID(c)

	var order models.Order
	err := h.DB.Preload("Items.MenuItem").Preload("Restaurant").Preload("Student").
		First(&order, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		serverError(c, h.Log, "get order", err)
		return
	}

	switch middleware.GetRole(c) {
	case models.RoleStudent:
		if order.StudentID != callerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
	case models.RoleVendor:
		if order.Restaurant.VendorID != callerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetStatusFlow documents the normal order lifecycle for clients.
func (h *OrderHandler) GetStatusFlow(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"lifecycle":       statusflow.Lifecycle(),
		"terminal_states": statusflow.TerminalStates,
		"description":     "Typical order lifecycle. Vendors may set any valid status at any time.",
	})
}

package handlers

import (
	"campus-eats-api/models"

	"gorm.io/gorm"
)

// Ownership checks follow the resource's foreign-key chain back to the owning
// vendor in a single query. A miss returns gorm.ErrRecordNotFound whether the
// row is absent or owned by someone else; callers surface both identically so
// the existence of other vendors' resources is never leaked.

// vendorRestaurant returns the restaurant owned by vendorID.
func vendorRestaurant(db *gorm.DB, vendorID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := db.Where("vendor_id = ?", vendorID).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// vendorOwnedRestaurant returns the restaurant only if it is owned by vendorID.
func vendorOwnedRestaurant(db *gorm.DB, restaurantID string, vendorID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := db.Where("id = ? AND vendor_id = ?", restaurantID, vendorID).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// vendorMenuItem returns the menu item only if its restaurant is owned by vendorID.
func vendorMenuItem(db *gorm.DB, itemID string, vendorID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := db.
		Joins("JOIN restaurants ON restaurants.id = menu_items.restaurant_id").
		Where("menu_items.id = ? AND restaurants.vendor_id = ?", itemID, vendorID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// vendorOrder returns the order only if it was placed against a restaurant
// owned by vendorID.
func vendorOrder(db *gorm.DB, orderID string, vendorID uint) (*models.Order, error) {
	var order models.Order
	err := db.
		Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
		Where("orders.id = ? AND restaurants.vendor_id = ?", orderID, vendorID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

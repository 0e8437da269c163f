package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"campus-eats-api/models"

	"github.com/stretchr/testify/require"
)

func TestCreateOrderComputesTotalAndSnapshotsPrice(t *testing.T) {
	r, db, cfg := setupRouter(t)
	vendor := createUser(t, db, "vendor@campus.edu", "vendor")
	student := createUser(t, db, "student@campus.edu", "student")
	restaurant := createRestaurant(t, db, vendor.ID, "Pizza Palace")
	item := createMenuItem(t, db, restaurant.ID, "Margherita", 12.99, true)

	rec := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"items": []map[string]interface{}{
			{"menu_item_id": item.ID, "quantity": 2},
		},
		"delivery_address": "Dorm 4, Room 212",
	}, tokenFor(t, cfg, student))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	order := body["order"].(map[string]interface{})
	require.InDelta(t, 25.98, order["total_amount"].(float64), 1e-9)

	var got models.Order
	require.NoError(t, db.Preload("Items").First(&got, uint(order["id"].(float64))).Error)
	require.InDelta(t, 25.98, got.TotalAmount, 1e-9)
	require.Equal(t, models.StatusPending, got.Status)
	require.Len(t, got.Items, 1)
	require.Equal(t, 12.99, got.Items[0].Price)
	require.Equal(t, 2, got.Items[0].Quantity)
}

func TestOrderTotalsSurviveMenuPriceChanges(t *testing.T) {
	r, db, cfg := setupRouter(t)
	vendor := createUser(t, db, "vendor@campus.edu", "vendor")
	student := createUser(t, db, "student@campus.edu", "student")
	restaurant := createRestaurant(t, db, vendor.ID, "Pizza Palace")
	item := createMenuItem(t, db, restaurant.ID, "Margherita", 12.99, true)

	rec := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"items": []map[string]interface{}{
			{"menu_item_id": item.ID, "quantity": 2},
		},
	}, tokenFor(t, cfg, student))
	require.Equal(t, http.StatusCreated, rec.Code)

	// the menu price changes after the order was placed
	require.NoError(t, db.Model(&item).Update("price", 99.99).Error)

	var got models.Order
	require.NoError(t, db.Preload("Items").First(&got, 1).Error)
	require.InDelta(t, 25.98, got.TotalAmount, 1e-9)
	require.Equal(t, 12.99, got.Items[0].Price)
}

func TestCreateOrderAllOrNothing(t *testing.T) {
	r, db, cfg := setupRouter(t)
	vendor := createUser(t, db, "vendor@campus.edu", "vendor")
	student := createUser(t, db, "student@campus.edu", "student")
	restaurant := createRestaurant(t, db, vendor.ID, "Pizza Palace")
	good := createMenuItem(t, db, restaurant.ID, "Margherita", 12.99, true)
	bad := createMenuItem(t, db, restaurant.ID, "Seasonal", 15.99, false)

	rec := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"items": []map[string]interface{}{
			{"menu_item_id": good.ID, "quantity": 1},
			{"menu_item_id": bad.ID, "quantity": 1},
		},
	}, tokenFor(t, cfg, student))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "not found or unavailable")

	var orders, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	require.EqualValues(t, 0, orders)
	require.EqualValues(t, 0, items)
}

func TestCreateOrderValidation(t *testing.T) {
	r, db, cfg := setupRouter(t)
	student := createUser(t, db, "student@campus.edu", "student")
	token := tokenFor(t, cfg, student)

	// empty items
	rec := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"restaurant_id": 1,
		"items":         []map[string]interface{}{},
	}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// missing restaurant
	rec = doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 1},
		},
	}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderIsStudentOnly(t *testing.T) {
	r, db, cfg := setupRouter(t)
	vendor := createUser(t, db, "vendor@campus.edu", "vendor")

	rec := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"restaurant_id": 1,
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 1},
		},
	}, tokenFor(t, cfg, vendor))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetMyOrdersNewestFirst(t *testing.T) {
	r, db, cfg := setupRouter(t)
	vendor := createUser(t, db, "vendor@campus.edu", "vendor")
	student := createUser(t, db, "student@campus.edu", "student")
	restaurant := createRestaurant(t, db, vendor.ID, "Pizza Palace")
	item := createMenuItem(t, db, restaurant.ID, "Margherita", 12.99, true)

	older := models.Order{
		StudentID:    student.ID,
		RestaurantID: restaurant.ID,
		TotalAmount:  12.99,
		Status:       models.StatusPending,
		Items:        []models.OrderItem{{MenuItemID: item.ID, Quantity: 1, Price: 12.99}},
		CreatedAt:    time.Now().Add(-time.Hour),
	}
	newer := models.Order{
		StudentID:    student.ID,
		RestaurantID: restaurant.ID,
		TotalAmount:  25.98,
		Status:       models.StatusPending,
		Items:        []models.OrderItem{{MenuItemID: item.ID, Quantity: 2, Price: 12.99}},
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	rec := doJSON(t, r, http.MethodGet, "/api/orders/my-orders", nil, tokenFor(t, cfg, student))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.EqualValues(t, 2, body["count"])
	orders := body["orders"].([]interface{})
	first := orders[0].(map[string]interface{})
	require.InDelta(t, 25.98, first["total_amount"].(float64), 1e-9)
	// counterpart identity and item names are joined in
	require.Equal(t, "Pizza Palace", first["restaurant"].(map[string]interface{})["name"])
	items := first["items"].([]interface{})
	menuItem := items[0].(map[string]interface{})["menu_item"].(map[string]interface{})
	require.Equal(t, "Margherita", menuItem["name"])
}

func TestGetVendorOrders(t *testing.T) {
	r, db, cfg := setupRouter(t)
	vendor := createUser(t, db, "vendor@campus.edu", "vendor")
	otherVendor := createUser(t, db, "other@campus.edu", "vendor")
	student := createUser(t, db, "student@campus.edu", "student")
	restaurant := createRestaurant(t, db, vendor.ID, "Pizza Palace")
	item := createMenuItem(t, db, restaurant.ID, "Margherita", 12.99, true)

	order := models.Order{
		StudentID:    student.ID,
		RestaurantID: restaurant.ID,
		TotalAmount:  12.99,
		Status:       models.StatusPending,
		Items:        []models.OrderItem{{MenuItemID: item.ID, Quantity: 1, Price: 12.99}},
	}
	require.NoError(t, db.Create(&order).Error)

	rec := doJSON(t, r, http.MethodGet, "/api/orders/vendor/orders", nil, tokenFor(t, cfg, vendor))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.EqualValues(t, 1, body["count"])
	first := body["orders"].([]interface{})[0].(map[string]interface{})
	studentInfo := first["student"].(map[string]interface{})
	require.Equal(t, "Test student", studentInfo["name"])
	require.Equal(t, "555-0100", studentInfo["phone"])

	// a vendor without a restaurant gets a 404
	rec = doJSON(t, r, http.MethodGet, "/api/orders/vendor/orders", nil, tokenFor(t, cfg, otherVendor))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatusPermissiveTransitions(t *testing.T) {
	r, db, cfg := setupRouter(t)
	vendor := createUser(t, db, "vendor@campus.edu", "vendor")
	student := createUser(t, db, "student@campus.edu", "student")
	restaurant := createRestaurant(t, db, vendor.ID, "Pizza Palace")
	order := models.Order{
		StudentID:    student.ID,
		RestaurantID: restaurant.ID,
		TotalAmount:  12.99,
		Status:       models.StatusPending,
		CreatedAt:    time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&order).Error)
	token := tokenFor(t, cfg, vendor)

	// delivered straight from pending, then back to pending: both accepted
	rec := doJSON(t, r, http.MethodPut, "/api/orders/1/status", map[string]string{"status": "delivered"}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPut, "/api/orders/1/status", map[string]string{"status": "pending"}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	require.Equal(t, models.StatusPending, got.Status)
	require.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	r, db, cfg := setupRouter(t)
	vendor := createUser(t, db, "vendor@campus.edu", "vendor")
	student := createUser(t, db, "student@campus.edu", "student")
	restaurant := createRestaurant(t, db, vendor.ID, "Pizza Palace")
	order := models.Order{StudentID: student.ID, RestaurantID: restaurant.ID, TotalAmount: 12.99, Status: models.StatusPending}
	require.NoError(t, db.Create(&order).Error)

	rec := doJSON(t, r, http.MethodPut, "/api/orders/1/status", map[string]string{"status": "vaporized"}, tokenFor(t, cfg, vendor))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid status")
}

func TestUpdateOrderStatusOwnershipIsolation(t *testing.T) {
	r, db, cfg := setupRouter(t)
	vendor := createUser(t, db, "vendor@campus.edu", "vendor")
	other := createUser(t, db, "other@campus.edu", "vendor")
	student := createUser(t, db, "student@campus.edu", "student")
	restaurant := createRestaurant(t, db, vendor.ID, "Pizza Palace")
	createRestaurant(t, db, other.ID, "Burger Kingdom")
	order := models.Order{StudentID: student.ID, RestaurantID: restaurant.ID, TotalAmount: 12.99, Status: models.StatusPending}
	require.NoError(t, db.Create(&order).Error)
	otherToken := tokenFor(t, cfg, other)

	recOwned := doJSON(t, r, http.MethodPut, "/api/orders/1/status", map[string]string{"status": "confirmed"}, otherToken)
	recMissing := doJSON(t, r, http.MethodPut, "/api/orders/999/status", map[string]string{"status": "confirmed"}, otherToken)
	require.Equal(t, http.StatusNotFound, recOwned.Code)
	require.Equal(t, http.StatusNotFound, recMissing.Code)
	require.JSONEq(t, recMissing.Body.String(), recOwned.Body.String())

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	require.Equal(t, models.StatusPending, got.Status)
}

func TestGetOrderAccessRules(t *testing.T) {
	r, db, cfg := setupRouter(t)
	vendor := createUser(t, db, "vendor@campus.edu", "vendor")
	otherVendor := createUser(t, db, "othervendor@campus.edu", "vendor")
	student := createUser(t, db, "student@campus.edu", "student")
	otherStudent := createUser(t, db, "otherstudent@campus.edu", "student")
	restaurant := createRestaurant(t, db, vendor.ID, "Pizza Palace")
	createRestaurant(t, db, otherVendor.ID, "Burger Kingdom")
	order := models.Order{StudentID: student.ID, RestaurantID: restaurant.ID, TotalAmount: 12.99, Status: models.StatusPending}
	require.NoError(t, db.Create(&order).Error)

	// owner student sees it
	rec := doJSON(t, r, http.MethodGet, "/api/orders/1", nil, tokenFor(t, cfg, student))
	require.Equal(t, http.StatusOK, rec.Code)

	// another student is forbidden
	rec = doJSON(t, r, http.MethodGet, "/api/orders/1", nil, tokenFor(t, cfg, otherStudent))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// owning vendor sees it
	rec = doJSON(t, r, http.MethodGet, "/api/orders/1", nil, tokenFor(t, cfg, vendor))
	require.Equal(t, http.StatusOK, rec.Code)

	// another vendor is forbidden
	rec = doJSON(t, r, http.MethodGet, "/api/orders/1", nil, tokenFor(t, cfg, otherVendor))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// a genuinely missing order is a 404, checked before the access rule
	rec = doJSON(t, r, http.MethodGet, "/api/orders/999", nil, tokenFor(t, cfg, otherStudent))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusFlowEndpoint(t *testing.T) {
	r, _, _ := setupRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/orders/status-flow", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Len(t, body["lifecycle"].([]interface{}), 5)
	require.Len(t, body["terminal_states"].([]interface{}), 2)
}

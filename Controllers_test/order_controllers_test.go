package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/platefront/restaurant-platform/controllers"
	"github.com/platefront/restaurant-platform/models"
	"github.com/platefront/restaurant-platform/services"
)

func setupTestDBForOrders(t *testing.T) (*gorm.DB, models.Tenant, models.MenuItem, models.MenuItem) {
	t.Helper()
	db := newTestDB(t)

	tenant := models.Tenant{Name: "Test Bistro", Slug: "test-bistro"}
	db.Create(&tenant)
	category := models.Category{TenantID: tenant.ID, Name: "Mains", Position: 1}
	db.Create(&category)
	burger := models.MenuItem{CategoryID: category.ID, Name: "Burger", Price: 1000, Available: true, Position: 1}
	fries := models.MenuItem{CategoryID: category.ID, Name: "Fries", Price: 500, Available: true, Position: 2}
	db.Create(&burger)
	db.Create(&fries)

	return db, tenant, burger, fries
}

func setupOrderRouter(db *gorm.DB, tenantID uint) *gin.Engine {
	router := gin.New()
	orderCtrl := controllers.NewOrderController(services.NewOrderService(db, nil))

	router.POST("/tenants/:tenant_id/orders", orderCtrl.CreateOrder)
	router.GET("/tenants/:tenant_id/orders/:order_id", orderCtrl.GetOrderByID)
	router.PATCH("/tenants/:tenant_id/orders/:order_id/items", orderCtrl.ModifyOrderItems)

	staff := router.Group("/admin")
	staff.Use(authAs(1, tenantID, "staff"))
	staff.GET("/orders", orderCtrl.GetAllOrders)
	staff.GET("/orders/:order_id", orderCtrl.GetStaffOrderByID)
	staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	staff.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	staff.GET("/kitchen/display", orderCtrl.GetKitchenDisplay)

	return router
}

func createOrderRequest(t *testing.T, router *gin.Engine, tenantID uint, burger, fries models.MenuItem) uint {
	t.Helper()
	payload := map[string]interface{}{
		"order_type": "dine_in",
		"items": []map[string]interface{}{
			{"menu_item_id": burger.ID, "quantity": 2},
			{"menu_item_id": fries.ID, "quantity": 1},
		},
		"total_amount": 2500,
	}
	w := performJSON(t, router, "POST", fmt.Sprintf("/tenants/%d/orders", tenantID), payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order failed: %d %s", w.Code, w.Body.String())
	}
	data := decodeBody(t, w)["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func TestGuestCreateAndFetchOrder(t *testing.T) {
	db, tenant, burger, fries := setupTestDBForOrders(t)
	router := setupOrderRouter(db, tenant.ID)

	payload := map[string]interface{}{
		"order_type": "dine_in",
		"items": []map[string]interface{}{
			{"menu_item_id": burger.ID, "quantity": 2},
			{"menu_item_id": fries.ID, "quantity": 1},
		},
		"total_amount": 2500,
	}
	w := performJSON(t, router, "POST", fmt.Sprintf("/tenants/%d/orders", tenant.ID), payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "Order created", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["order_number"])
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, float64(2500), data["total_amount"])
	orderID := int(data["id"].(float64))

	w = performJSON(t, router, "GET", fmt.Sprintf("/tenants/%d/orders/%d", tenant.ID, orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody(t, w)
	assert.Equal(t, "Order detail", resp["message"])
	getData := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(orderID), getData["id"])
	assert.Len(t, getData["order_items"], 2)
}

func TestCreateOrderRejectsMismatchedTotal(t *testing.T) {
	db, tenant, burger, _ := setupTestDBForOrders(t)
	router := setupOrderRouter(db, tenant.ID)

	payload := map[string]interface{}{
		"order_type":   "dine_in",
		"items":        []map[string]interface{}{{"menu_item_id": burger.ID, "quantity": 1}},
		"total_amount": 1,
	}
	w := performJSON(t, router, "POST", fmt.Sprintf("/tenants/%d/orders", tenant.ID), payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	db, tenant, burger, fries := setupTestDBForOrders(t)
	router := setupOrderRouter(db, tenant.ID)
	orderID := createOrderRequest(t, router, tenant.ID, burger, fries)

	w := performJSON(t, router, "PATCH", fmt.Sprintf("/admin/orders/%d/status", orderID),
		map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "confirmed", data["status"])
	assert.NotNil(t, data["confirmed_at"])

	// Jumping straight from confirmed to ready is refused.
	w = performJSON(t, router, "PATCH", fmt.Sprintf("/admin/orders/%d/status", orderID),
		map[string]interface{}{"status": "ready"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// An unknown order is a plain 404.
	w = performJSON(t, router, "PATCH", "/admin/orders/424242/status",
		map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestModifyOrderItemsEndpoint(t *testing.T) {
	db, tenant, burger, fries := setupTestDBForOrders(t)
	router := setupOrderRouter(db, tenant.ID)
	orderID := createOrderRequest(t, router, tenant.ID, burger, fries)

	payload := map[string]interface{}{
		"items":        []map[string]interface{}{{"menu_item_id": fries.ID, "quantity": 2}},
		"total_amount": 1000,
	}
	w := performJSON(t, router, "PATCH", fmt.Sprintf("/tenants/%d/orders/%d/items", tenant.ID, orderID), payload)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, float64(1000), data["total_amount"])
	assert.Len(t, data["order_items"], 1)

	// Once the kitchen starts, the item set is frozen.
	for _, status := range []string{"confirmed", "preparing"} {
		w = performJSON(t, router, "PATCH", fmt.Sprintf("/admin/orders/%d/status", orderID),
			map[string]interface{}{"status": status})
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w = performJSON(t, router, "PATCH", fmt.Sprintf("/tenants/%d/orders/%d/items", tenant.ID, orderID), payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestKitchenDisplayEndpoint(t *testing.T) {
	db, tenant, burger, fries := setupTestDBForOrders(t)
	router := setupOrderRouter(db, tenant.ID)

	pendingID := createOrderRequest(t, router, tenant.ID, burger, fries)
	confirmedID := createOrderRequest(t, router, tenant.ID, burger, fries)

	w := performJSON(t, router, "PATCH", fmt.Sprintf("/admin/orders/%d/status", confirmedID),
		map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, router, "GET", "/admin/kitchen/display", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["data"].([]interface{})
	assert.Len(t, list, 1)
	entry := list[0].(map[string]interface{})
	assert.Equal(t, float64(confirmedID), entry["id"])
	assert.NotEqual(t, float64(pendingID), entry["id"])
}

func TestDeleteOrderEndpoint(t *testing.T) {
	db, tenant, burger, fries := setupTestDBForOrders(t)
	router := setupOrderRouter(db, tenant.ID)
	orderID := createOrderRequest(t, router, tenant.ID, burger, fries)

	w := performJSON(t, router, "DELETE", fmt.Sprintf("/admin/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, router, "GET", fmt.Sprintf("/tenants/%d/orders/%d", tenant.ID, orderID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

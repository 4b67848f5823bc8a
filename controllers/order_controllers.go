package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platefront/restaurant-platform/models"
	"github.com/platefront/restaurant-platform/services"
	"github.com/platefront/restaurant-platform/utils"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

// GetAllOrders -> staff listing with items
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	orders, err := oc.Service.ListOrders(tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> guest checkout, no auth; the tenant comes from the URL
func (oc *OrderController) CreateOrder(c *gin.Context) {
	tenantID, _ := strconv.Atoi(c.Param("tenant_id"))

	var body struct {
		OrderType    models.OrderType          `json:"order_type" binding:"required"`
		TableID      *uint                     `json:"table_id"`
		Items        []services.OrderItemInput `json:"items" binding:"required"`
		TotalAmount  float64                   `json:"total_amount"`
		SpecialNotes string                    `json:"special_notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.CreateOrder(services.CreateOrderInput{
		TenantID:     uint(tenantID),
		OrderType:    body.OrderType,
		TableID:      body.TableID,
		Items:        body.Items,
		TotalAmount:  body.TotalAmount,
		SpecialNotes: body.SpecialNotes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> guest order detail
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	tenantID, _ := strconv.Atoi(c.Param("tenant_id"))
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.Service.GetOrder(uint(tenantID), uint(orderID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetStaffOrderByID -> same lookup, tenant taken from the caller token
func (oc *OrderController) GetStaffOrderByID(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.Service.GetOrder(tenantID, uint(orderID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> staff drives the order through its lifecycle
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		Status       models.OrderStatus `json:"status" binding:"required"`
		TableID      *uint              `json:"table_id"`
		SpecialNotes *string            `json:"special_notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.UpdateOrderStatus(tenantID, uint(orderID), body.Status, &services.OrderPatch{
		TableID:      body.TableID,
		SpecialNotes: body.SpecialNotes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// ModifyOrderItems -> guest replaces the whole item set while the order
// has not entered preparation
func (oc *OrderController) ModifyOrderItems(c *gin.Context) {
	tenantID, _ := strconv.Atoi(c.Param("tenant_id"))
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		Items        []services.OrderItemInput `json:"items" binding:"required"`
		TotalAmount  float64                   `json:"total_amount"`
		SpecialNotes *string                   `json:"special_notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.ModifyOrderItems(uint(tenantID), uint(orderID), body.Items, body.TotalAmount, body.SpecialNotes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order items updated", order)
}

// DeleteOrder -> staff hard delete
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	if err := oc.Service.DeleteOrder(tenantID, uint(orderID)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": orderID})
}

// GetKitchenDisplay -> chef & staff overview of in-flight orders
func (oc *OrderController) GetKitchenDisplay(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "chef" && role != "staff" && role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	orders, err := oc.Service.KitchenDisplay(tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen display orders", orders)
}

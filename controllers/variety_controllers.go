package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefront/restaurant-platform/models"
	"github.com/platefront/restaurant-platform/services"
	"github.com/platefront/restaurant-platform/utils"
)

type VarietyController struct {
	DB      *gorm.DB
	Reorder *services.ReorderService
}

func NewVarietyController(db *gorm.DB, reorder *services.ReorderService) *VarietyController {
	return &VarietyController{DB: db, Reorder: reorder}
}

// CreateVariety appends at the end of the menu item's variety list.
func (vc *VarietyController) CreateVariety(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	itemID, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := vc.DB.Preload("Category").First(&item, itemID).Error; err != nil || item.Category.TenantID != tenantID {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	var body struct {
		Name       string  `json:"name" binding:"required"`
		PriceDelta float64 `json:"price_delta"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	position, err := services.NextPosition(vc.DB, &models.MenuItemVariety{}, services.VarietyScope(item.ID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	variety := models.MenuItemVariety{
		MenuItemID: item.ID,
		TenantID:   tenantID,
		Name:       body.Name,
		PriceDelta: body.PriceDelta,
		Position:   position,
	}
	if err := vc.DB.Create(&variety).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Variety created", variety)
}

// UpdateVariety
func (vc *VarietyController) UpdateVariety(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("variety_id"))

	var variety models.MenuItemVariety
	if err := vc.DB.Where("tenant_id = ?", tenantID).First(&variety, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name       *string  `json:"name"`
		PriceDelta *float64 `json:"price_delta"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		variety.Name = *body.Name
	}
	if body.PriceDelta != nil {
		variety.PriceDelta = *body.PriceDelta
	}
	if err := vc.DB.Save(&variety).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Variety updated", variety)
}

// DeleteVariety soft-deletes, keeping its position slot.
func (vc *VarietyController) DeleteVariety(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("variety_id"))

	res := vc.DB.Where("tenant_id = ?", tenantID).Delete(&models.MenuItemVariety{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("variety not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Variety deleted", gin.H{"variety_id": id})
}

// MoveVariety -> swap with the adjacent variety of the same menu item
func (vc *VarietyController) MoveVariety(c *gin.Context) {
	moveEntity(c, vc.Reorder, services.KindVariety, "variety_id")
}

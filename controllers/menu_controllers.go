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

type MenuItemController struct {
	DB      *gorm.DB
	Reorder *services.ReorderService
}

func NewMenuItemController(db *gorm.DB, reorder *services.ReorderService) *MenuItemController {
	return &MenuItemController{DB: db, Reorder: reorder}
}

// tenantCategory loads a category after checking it belongs to the caller.
func (mc *MenuItemController) tenantCategory(tenantID uint, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := mc.DB.Where("tenant_id = ?", tenantID).First(&category, categoryID).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetMenuByCategory -> items of one category in display order
func (mc *MenuItemController) GetMenuByCategory(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	categoryID, _ := strconv.Atoi(c.Query("category_id"))
	if _, err := mc.tenantCategory(tenantID, uint(categoryID)); err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	var items []models.MenuItem
	if err := mc.DB.Preload("Varieties", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Where("category_id = ?", categoryID).Order("position asc").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu items by category", items)
}

// CreateMenuItem appends at the end of its category scope.
func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	var body struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"required"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must be non-negative"))
		return
	}

	if _, err := mc.tenantCategory(tenantID, body.CategoryID); err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	position, err := services.NextPosition(mc.DB, &models.MenuItem{}, services.MenuItemScope(body.CategoryID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	item := models.MenuItem{
		CategoryID:  body.CategoryID,
		Name:        body.Name,
		Price:       body.Price,
		Description: body.Description,
		Available:   true,
		Position:    position,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// GetMenuItemByID
func (mc *MenuItemController) GetMenuItemByID(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("item_id"))

	item, err := mc.tenantMenuItem(tenantID, uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// UpdateMenuItem
func (mc *MenuItemController) UpdateMenuItem(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("item_id"))

	item, err := mc.tenantMenuItem(tenantID, uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	var body struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		Available   *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		item.Name = *body.Name
	}
	if body.Price != nil {
		if *body.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must be non-negative"))
			return
		}
		item.Price = *body.Price
	}
	if body.Description != nil {
		item.Description = *body.Description
	}
	if body.Available != nil {
		item.Available = *body.Available
	}

	if err := mc.DB.Save(item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem soft-deletes, leaving a position gap in the category.
func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("item_id"))

	item, err := mc.tenantMenuItem(tenantID, uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	if err := mc.DB.Delete(item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"item_id": id})
}

// MoveMenuItem -> swap with the adjacent item in the same category
func (mc *MenuItemController) MoveMenuItem(c *gin.Context) {
	moveEntity(c, mc.Reorder, services.KindMenuItem, "item_id")
}

func (mc *MenuItemController) tenantMenuItem(tenantID, itemID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := mc.DB.Preload("Category").First(&item, itemID).Error; err != nil {
		return nil, err
	}
	if item.Category.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

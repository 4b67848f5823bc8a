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

type CategoryController struct {
	DB      *gorm.DB
	Reorder *services.ReorderService
}

func NewCategoryController(db *gorm.DB, reorder *services.ReorderService) *CategoryController {
	return &CategoryController{DB: db, Reorder: reorder}
}

// GetAllCategories -> tenant's categories in display order, grouped first
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	var categories []models.Category
	if err := cc.DB.Where("tenant_id = ?", tenantID).Order("group_id asc, position asc").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All menu categories", categories)
}

// CreateCategory appends at the end of its (tenant, group) scope.
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	var body struct {
		Name    string `json:"name" binding:"required"`
		GroupID *uint  `json:"group_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.GroupID != nil {
		var group models.CategoryGroup
		if err := cc.DB.Where("tenant_id = ?", tenantID).First(&group, *body.GroupID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("category group not found"))
			return
		}
	}

	position, err := services.NextPosition(cc.DB, &models.Category{}, services.CategoryScope(tenantID, body.GroupID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	category := models.Category{
		TenantID: tenantID,
		GroupID:  body.GroupID,
		Name:     body.Name,
		Position: position,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// GetCategoryByID
func (cc *CategoryController) GetCategoryByID(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("cat_id"))

	var category models.Category
	if err := cc.DB.Where("tenant_id = ?", tenantID).First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category detail", category)
}

// UpdateCategory
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("cat_id"))

	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := cc.DB.Where("tenant_id = ?", tenantID).First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		category.Name = body.Name
	}
	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory soft-deletes, leaving a position gap in its scope.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("cat_id"))

	res := cc.DB.Where("tenant_id = ?", tenantID).Delete(&models.Category{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": id})
}

// MoveCategory -> swap with the adjacent sibling in the same group
func (cc *CategoryController) MoveCategory(c *gin.Context) {
	moveEntity(c, cc.Reorder, services.KindCategory, "cat_id")
}

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

type CategoryGroupController struct {
	DB      *gorm.DB
	Reorder *services.ReorderService
}

func NewCategoryGroupController(db *gorm.DB, reorder *services.ReorderService) *CategoryGroupController {
	return &CategoryGroupController{DB: db, Reorder: reorder}
}

// GetAllGroups -> tenant's groups in display order
func (gc *CategoryGroupController) GetAllGroups(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	var groups []models.CategoryGroup
	if err := gc.DB.Where("tenant_id = ?", tenantID).Order("position asc").Find(&groups).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All category groups", groups)
}

// CreateGroup appends the new group at the end of the tenant's ordering.
func (gc *CategoryGroupController) CreateGroup(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	position, err := services.NextPosition(gc.DB, &models.CategoryGroup{}, services.CategoryGroupScope(tenantID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	group := models.CategoryGroup{
		TenantID: tenantID,
		Name:     body.Name,
		Position: position,
	}
	if err := gc.DB.Create(&group).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category group created", group)
}

// UpdateGroup
func (gc *CategoryGroupController) UpdateGroup(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("group_id"))

	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var group models.CategoryGroup
	if err := gc.DB.Where("tenant_id = ?", tenantID).First(&group, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		group.Name = body.Name
	}
	if err := gc.DB.Save(&group).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category group updated", group)
}

// DeleteGroup soft-deletes; the group keeps its position so the gap never
// shifts surviving siblings.
func (gc *CategoryGroupController) DeleteGroup(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("group_id"))

	res := gc.DB.Where("tenant_id = ?", tenantID).Delete(&models.CategoryGroup{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("category group not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category group deleted", gin.H{"group_id": id})
}

// MoveGroup -> swap with the adjacent sibling in the given direction
func (gc *CategoryGroupController) MoveGroup(c *gin.Context) {
	moveEntity(c, gc.Reorder, services.KindCategoryGroup, "group_id")
}

// moveEntity is the shared move endpoint body for all four entity kinds.
func moveEntity(c *gin.Context, reorder *services.ReorderService, kind services.EntityKind, param string) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param(param))

	var body struct {
		Direction services.MoveDirection `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := reorder.Move(tenantID, kind, uint(id), body.Direction)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Move processed", result)
}

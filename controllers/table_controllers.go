package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefront/restaurant-platform/models"
	"github.com/platefront/restaurant-platform/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables -> list the caller tenant's tables
func (tc *TableController) GetAllTables(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	var tables []models.Table
	if err := tc.DB.Where("tenant_id = ?", tenantID).Order("table_number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable
func (tc *TableController) CreateTable(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	var body struct {
		TableNumber string `json:"table_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TenantID:    tenantID,
		TableNumber: body.TableNumber,
		Status:      "available",
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// UpdateTableStatus
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("table_id"))

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("tenant_id = ?", tenantID).First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Status = body.Status
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable
func (tc *TableController) DeleteTable(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("table_id"))

	res := tc.DB.Where("tenant_id = ?", tenantID).Delete(&models.Table{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": id})
}

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

func setupCategoryRouter(db *gorm.DB, tenantID uint) *gin.Engine {
	router := gin.New()
	reorder := services.NewReorderService(db)
	categoryCtrl := controllers.NewCategoryController(db, reorder)
	groupCtrl := controllers.NewCategoryGroupController(db, reorder)

	admin := router.Group("/admin")
	admin.Use(authAs(1, tenantID, "admin"))
	admin.GET("/categories", categoryCtrl.GetAllCategories)
	admin.POST("/categories", categoryCtrl.CreateCategory)
	admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
	admin.POST("/categories/:cat_id/move", categoryCtrl.MoveCategory)
	admin.POST("/category-groups", groupCtrl.CreateGroup)
	admin.POST("/category-groups/:group_id/move", groupCtrl.MoveGroup)

	return router
}

func createCategoryRequest(t *testing.T, router *gin.Engine, name string) (uint, int) {
	t.Helper()
	w := performJSON(t, router, "POST", "/admin/categories", map[string]interface{}{"name": name})
	if w.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", w.Code, w.Body.String())
	}
	data := decodeBody(t, w)["data"].(map[string]interface{})
	return uint(data["id"].(float64)), int(data["position"].(float64))
}

func TestCreateCategoryAssignsNextPosition(t *testing.T) {
	db := newTestDB(t)
	tenant := models.Tenant{Name: "Demo", Slug: "demo"}
	db.Create(&tenant)
	router := setupCategoryRouter(db, tenant.ID)

	_, pos1 := createCategoryRequest(t, router, "Appetizers")
	_, pos2 := createCategoryRequest(t, router, "Mains")
	_, pos3 := createCategoryRequest(t, router, "Desserts")

	assert.Equal(t, 1, pos1)
	assert.Equal(t, 2, pos2)
	assert.Equal(t, 3, pos3)
}

func TestMoveCategoryEndpoint(t *testing.T) {
	db := newTestDB(t)
	tenant := models.Tenant{Name: "Demo", Slug: "demo"}
	db.Create(&tenant)
	router := setupCategoryRouter(db, tenant.ID)

	firstID, _ := createCategoryRequest(t, router, "Appetizers")
	secondID, _ := createCategoryRequest(t, router, "Mains")

	w := performJSON(t, router, "POST", fmt.Sprintf("/admin/categories/%d/move", secondID),
		map[string]interface{}{"direction": "up"})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Move processed", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["moved"])

	// The swapped sibling is already at the top now.
	w = performJSON(t, router, "POST", fmt.Sprintf("/admin/categories/%d/move", secondID),
		map[string]interface{}{"direction": "up"})
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["moved"])
	assert.NotEmpty(t, data["reason"])

	var first, second models.Category
	assert.NoError(t, db.First(&first, firstID).Error)
	assert.NoError(t, db.First(&second, secondID).Error)
	assert.Equal(t, 2, first.Position)
	assert.Equal(t, 1, second.Position)

	w = performJSON(t, router, "POST", fmt.Sprintf("/admin/categories/%d/move", secondID),
		map[string]interface{}{"direction": "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCategoryKeepsPositionGap(t *testing.T) {
	db := newTestDB(t)
	tenant := models.Tenant{Name: "Demo", Slug: "demo"}
	db.Create(&tenant)
	router := setupCategoryRouter(db, tenant.ID)

	createCategoryRequest(t, router, "Appetizers")
	middleID, _ := createCategoryRequest(t, router, "Mains")
	createCategoryRequest(t, router, "Desserts")

	w := performJSON(t, router, "DELETE", fmt.Sprintf("/admin/categories/%d", middleID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Survivors keep their positions; the next insert goes after the max.
	_, pos := createCategoryRequest(t, router, "Drinks")
	assert.Equal(t, 4, pos)

	w = performJSON(t, router, "DELETE", "/admin/categories/424242", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveCategoryGroupEndpoint(t *testing.T) {
	db := newTestDB(t)
	tenant := models.Tenant{Name: "Demo", Slug: "demo"}
	db.Create(&tenant)
	router := setupCategoryRouter(db, tenant.ID)

	w := performJSON(t, router, "POST", "/admin/category-groups", map[string]interface{}{"name": "Food"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = performJSON(t, router, "POST", "/admin/category-groups", map[string]interface{}{"name": "Drinks"})
	assert.Equal(t, http.StatusCreated, w.Code)
	drinksID := uint(decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	w = performJSON(t, router, "POST", fmt.Sprintf("/admin/category-groups/%d/move", drinksID),
		map[string]interface{}{"direction": "up"})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["moved"])

	var drinks models.CategoryGroup
	assert.NoError(t, db.First(&drinks, drinksID).Error)
	assert.Equal(t, 1, drinks.Position)
}

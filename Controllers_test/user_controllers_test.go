package Controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/platefront/restaurant-platform/controllers"
	"github.com/platefront/restaurant-platform/middlewares"
	"github.com/platefront/restaurant-platform/models"
	"github.com/platefront/restaurant-platform/utils"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	userCtrl := controllers.NewUserController(db)

	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)

	admin := router.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	admin.GET("/profile", userCtrl.GetProfile)
	admin.POST("/logout", userCtrl.Logout)
	admin.GET("/users", userCtrl.GetAllUsers)

	return router
}

func TestRegisterCreatesTenantAndAdmin(t *testing.T) {
	db := newTestDB(t)
	router := setupUserRouter(db)

	w := performJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":        "Owner",
		"email":       "owner@demo.test",
		"password":    "secret123",
		"tenant_name": "Demo Bistro",
		"tenant_slug": "demo-bistro",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var owner models.User
	assert.NoError(t, db.Where("email = ?", "owner@demo.test").First(&owner).Error)
	assert.Equal(t, "admin", owner.Role)

	var tenant models.Tenant
	assert.NoError(t, db.Where("slug = ?", "demo-bistro").First(&tenant).Error)
	assert.Equal(t, tenant.ID, owner.TenantID)

	// Joining an existing tenant defaults to the staff role.
	w = performJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":        "Waiter",
		"email":       "waiter@demo.test",
		"password":    "secret123",
		"tenant_slug": "demo-bistro",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var waiter models.User
	assert.NoError(t, db.Where("email = ?", "waiter@demo.test").First(&waiter).Error)
	assert.Equal(t, "staff", waiter.Role)
	assert.Equal(t, tenant.ID, waiter.TenantID)
}

func TestLoginReturnsScopedToken(t *testing.T) {
	db := newTestDB(t)
	router := setupUserRouter(db)

	w := performJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":        "Owner",
		"email":       "owner@login.test",
		"password":    "secret123",
		"tenant_name": "Login Bistro",
		"tenant_slug": "login-bistro",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, router, "POST", "/login", map[string]interface{}{
		"email":    "owner@login.test",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	token := data["token"].(string)

	claims, err := utils.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.NotZero(t, claims.TenantID)

	w = performJSON(t, router, "POST", "/login", map[string]interface{}{
		"email":    "owner@login.test",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func authedGet(t *testing.T, router *gin.Engine, url, token string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProfileAndLogout(t *testing.T) {
	db := newTestDB(t)
	router := setupUserRouter(db)

	w := performJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":        "Owner",
		"email":       "owner@profile.test",
		"password":    "secret123",
		"tenant_name": "Profile Bistro",
		"tenant_slug": "profile-bistro",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, router, "POST", "/login", map[string]interface{}{
		"email":    "owner@profile.test",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	token := decodeBody(t, w)["data"].(map[string]interface{})["token"].(string)

	w = authedGet(t, router, "/admin/profile", token)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "owner@profile.test", data["email"])

	// Missing token is rejected outright.
	req, _ := http.NewRequest("GET", "/admin/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A revoked token stops working.
	logoutReq, _ := http.NewRequest("POST", "/admin/logout", nil)
	logoutReq.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, logoutReq)
	assert.Equal(t, http.StatusOK, rec.Code)

	w = authedGet(t, router, "/admin/profile", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAllUsersRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	router := setupUserRouter(db)

	w := performJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":        "Owner",
		"email":       "owner@roles.test",
		"password":    "secret123",
		"tenant_name": "Roles Bistro",
		"tenant_slug": "roles-bistro",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = performJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":        "Waiter",
		"email":       "waiter@roles.test",
		"password":    "secret123",
		"tenant_slug": "roles-bistro",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	login := func(email string) string {
		w := performJSON(t, router, "POST", "/login", map[string]interface{}{
			"email":    email,
			"password": "secret123",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		return decodeBody(t, w)["data"].(map[string]interface{})["token"].(string)
	}

	w = authedGet(t, router, "/admin/users", login("owner@roles.test"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 2)

	w = authedGet(t, router, "/admin/users", login("waiter@roles.test"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefront/restaurant-platform/controllers"
	"github.com/platefront/restaurant-platform/middlewares"
	"github.com/platefront/restaurant-platform/realtime"
	"github.com/platefront/restaurant-platform/services"
)

func SetupRouter(db *gorm.DB, hub *realtime.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	orderService := services.NewOrderService(db, hub)
	reorderService := services.NewReorderService(db)

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	groupCtrl := controllers.NewCategoryGroupController(db, reorderService)
	categoryCtrl := controllers.NewCategoryController(db, reorderService)
	menuCtrl := controllers.NewMenuItemController(db, reorderService)
	varietyCtrl := controllers.NewVarietyController(db, reorderService)
	orderCtrl := controllers.NewOrderController(orderService)
	realtimeCtrl := controllers.NewRealtimeController(hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Guest ordering (no auth, tenant taken from the URL)
	r.POST("/tenants/:tenant_id/orders", orderCtrl.CreateOrder)
	r.GET("/tenants/:tenant_id/orders/:order_id", orderCtrl.GetOrderByID)
	r.PATCH("/tenants/:tenant_id/orders/:order_id/items", orderCtrl.ModifyOrderItems)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/users", userCtrl.GetAllUsers)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTableStatus)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// CATEGORY GROUPS
	auth.GET("/category-groups", groupCtrl.GetAllGroups)
	auth.POST("/category-groups", groupCtrl.CreateGroup)
	auth.PATCH("/category-groups/:group_id", groupCtrl.UpdateGroup)
	auth.DELETE("/category-groups/:group_id", groupCtrl.DeleteGroup)
	auth.POST("/category-groups/:group_id/move", groupCtrl.MoveGroup)

	// CATEGORIES
	auth.GET("/categories", categoryCtrl.GetAllCategories)
	auth.POST("/categories", categoryCtrl.CreateCategory)
	auth.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)
	auth.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
	auth.POST("/categories/:cat_id/move", categoryCtrl.MoveCategory)

	// MENU ITEMS
	auth.GET("/menu-items/by-category", menuCtrl.GetMenuByCategory)
	auth.POST("/menu-items", menuCtrl.CreateMenuItem)
	auth.GET("/menu-items/:item_id", menuCtrl.GetMenuItemByID)
	auth.PATCH("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
	auth.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)
	auth.POST("/menu-items/:item_id/move", menuCtrl.MoveMenuItem)

	// VARIETIES
	auth.POST("/menu-items/:item_id/varieties", varietyCtrl.CreateVariety)
	auth.PATCH("/varieties/:variety_id", varietyCtrl.UpdateVariety)
	auth.DELETE("/varieties/:variety_id", varietyCtrl.DeleteVariety)
	auth.POST("/varieties/:variety_id/move", varietyCtrl.MoveVariety)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetStaffOrderByID)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	auth.GET("/kitchen/display", orderCtrl.GetKitchenDisplay)

	// WebSocket endpoint, token passed as a query param
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("", realtimeCtrl.Handle)
	}

	return r
}

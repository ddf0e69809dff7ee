package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/aytac78/order-business-app-sub001/controllers"
	"github.com/aytac78/order-business-app-sub001/middlewares"
	"github.com/aytac78/order-business-app-sub001/services"
)

// SetupRouter wires every HTTP and websocket route. Middlewares passed in
// extra run before the route handlers, e.g. the rate limiter.
func SetupRouter(db *gorm.DB, store *services.GormOrderStore, kitchenSvc *services.KitchenService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(extra...)

	// Inisialisasi controller
	orderCtrl := controllers.NewOrderController(store)
	kitchenCtrl := controllers.NewKitchenController(kitchenSvc)
	kdsCtrl := controllers.NewKDSController(kitchenSvc)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	venue := r.Group("/venues/:venue_id")
	venue.Use(middlewares.AuthMiddleware(), middlewares.VenueScope())

	// ORDERS (POS: staff/admin)
	venue.GET("/orders", orderCtrl.GetActiveOrders)
	venue.POST("/orders", middlewares.RequireRoles("staff"), orderCtrl.CreateOrder)
	venue.POST("/orders/:order_id/cancel", middlewares.RequireRoles("staff"), orderCtrl.CancelOrder)

	// KITCHEN
	kitchenGroup := venue.Group("/kitchen")
	{
		kitchenGroup.GET("/tickets", middlewares.RequireRoles("chef", "staff"), kitchenCtrl.GetTickets)

		chef := kitchenGroup.Group("/orders/:order_id", middlewares.RequireRoles("chef"))
		chef.POST("/start", kitchenCtrl.StartPreparation)
		chef.POST("/items/:item_id/start", kitchenCtrl.StartItem)
		chef.POST("/items/:item_id/ready", kitchenCtrl.MarkItemReady)

		// staff mengantar order yang sudah ready
		kitchenGroup.POST("/orders/:order_id/complete", middlewares.RequireRoles("staff"), kitchenCtrl.CompleteOrder)
	}

	// MENU CATEGORIES
	venue.GET("/categories", categoryCtrl.GetCategories)
	venue.POST("/categories", middlewares.RequireRoles("staff"), categoryCtrl.CreateCategory)

	// NOTIFICATIONS (staff/admin)
	venue.GET("/notifications", middlewares.RequireRoles("staff"), notificationCtrl.GetNotifications)

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/venues/:venue_id", kdsCtrl.KDSHandler)
	}

	return r
}

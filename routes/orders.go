package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/config"
	orderControllers "github.com/p-bittencourt/studious-waffle/controllers/order"
	"github.com/p-bittencourt/studious-waffle/middleware"
)

// SetupOrderRoutes registers all "/orders/*" endpoints. Reads are public;
// mutation requires a shopper bearer token.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	orders := r.Group("/orders")

	orders.GET("", orderControllers.GetOrders(db))
	orders.GET("/:id", orderControllers.GetOrderByID(db))

	// websocket stream of order events
	orders.GET("/ws", orderControllers.OrderWebSocketHandler)

	shopperOnly := orders.Group("")
	shopperOnly.Use(middleware.RequireAuth(db, cfg.JWTSecret), middleware.RequireShopper())
	{
		shopperOnly.POST("", orderControllers.PlaceOrderHandler(db))
		shopperOnly.PATCH("/:id", orderControllers.UpdateOrder(db))
		shopperOnly.DELETE("/:id", orderControllers.DeleteOrder(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/config"
	shopperControllers "github.com/p-bittencourt/studious-waffle/controllers/shopper"
	"github.com/p-bittencourt/studious-waffle/middleware"
)

// SetupShopperRoutes registers all "/shoppers/*" endpoints. Signup is
// public; everything else requires a shopper bearer token.
func SetupShopperRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	shoppers := r.Group("/shoppers")

	shoppers.POST("/signup", shopperControllers.Signup(db))

	protected := shoppers.Group("")
	protected.Use(middleware.RequireAuth(db, cfg.JWTSecret), middleware.RequireShopper())
	{
		protected.GET("", shopperControllers.GetShoppers(db))
		protected.GET("/:id", shopperControllers.GetShopperByID(db))
		protected.PATCH("/:id", shopperControllers.UpdateShopper(db))
		protected.DELETE("/:id", shopperControllers.DeleteShopper(db))

		// Shopping cart
		protected.POST("/:id/cart/items", shopperControllers.AddCartItem(db))
		protected.DELETE("/:id/cart/items/:product_id", shopperControllers.RemoveCartItem(db))
		protected.DELETE("/:id/cart", shopperControllers.ClearCartHandler(db))
	}
}

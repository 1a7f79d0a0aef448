package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/config"
	vendorControllers "github.com/p-bittencourt/studious-waffle/controllers/vendor"
	"github.com/p-bittencourt/studious-waffle/middleware"
)

// SetupVendorRoutes registers all "/vendors/*" endpoints. Signup is public;
// everything else requires a vendor bearer token.
func SetupVendorRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	vendors := r.Group("/vendors")

	vendors.POST("/signup", vendorControllers.Signup(db))

	protected := vendors.Group("")
	protected.Use(middleware.RequireAuth(db, cfg.JWTSecret), middleware.RequireVendor())
	{
		protected.GET("", vendorControllers.GetVendors(db))
		protected.GET("/:id", vendorControllers.GetVendorByID(db))
		protected.PATCH("/:id", vendorControllers.UpdateVendor(db))
		protected.DELETE("/:id", vendorControllers.DeleteVendor(db))
	}
}

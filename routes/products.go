package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/config"
	productcontroller "github.com/p-bittencourt/studious-waffle/controllers/product"
	"github.com/p-bittencourt/studious-waffle/middleware"
)

// SetupProductRoutes registers all "/products/*" endpoints. Listing and
// lookup are public; mutation requires a vendor bearer token.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	products := r.Group("/products")

	products.GET("", productcontroller.GetProducts(db))
	products.GET("/:id", productcontroller.GetProductByID(db))

	vendorOnly := products.Group("")
	vendorOnly.Use(middleware.RequireAuth(db, cfg.JWTSecret), middleware.RequireVendor())
	{
		vendorOnly.POST("", productcontroller.CreateProduct(db))
		vendorOnly.PATCH("/:id", productcontroller.UpdateProduct(db))
		vendorOnly.DELETE("/:id", productcontroller.DeleteProduct(db))
		vendorOnly.GET("/export-excel", productcontroller.ExportProducts(db))
	}
}

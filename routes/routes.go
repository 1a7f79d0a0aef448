package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/auth"
	"github.com/p-bittencourt/studious-waffle/config"
)

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.POST("/login", auth.Login(db, cfg.JWTSecret))

	SetupShopperRoutes(r, db, cfg)
	SetupVendorRoutes(r, db, cfg)
	SetupProductRoutes(r, db, cfg)
	SetupOrderRoutes(r, db, cfg)
}

package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/models"
)

// Token is the login response body.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates a form-encoded username/password pair against both
// user tables and returns a bearer token.
//
// POST /login
func Login(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")
		if username == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
			return
		}

		if !authenticateShopper(db, username, password) && !authenticateVendor(db, username, password) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
			return
		}

		token, err := GenerateAccessToken(username, secret)
		if err != nil {
			log.Println("failed to sign access token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}

		stampLastLogin(db, username)

		c.JSON(http.StatusOK, Token{AccessToken: token, TokenType: "bearer"})
	}
}

func authenticateShopper(db *gorm.DB, email, password string) bool {
	var shopper models.Shopper
	if err := db.Where("email = ?", email).First(&shopper).Error; err != nil {
		return false
	}
	return CheckPassword(password, shopper.PasswordHash)
}

func authenticateVendor(db *gorm.DB, email, password string) bool {
	var vendor models.Vendor
	if err := db.Where("email = ?", email).First(&vendor).Error; err != nil {
		return false
	}
	return CheckPassword(password, vendor.PasswordHash)
}

func stampLastLogin(db *gorm.DB, email string) {
	now := time.Now().UTC()
	res := db.Model(&models.Shopper{}).Where("email = ?", email).Update("last_login", now)
	if res.Error == nil && res.RowsAffected > 0 {
		return
	}
	if err := db.Model(&models.Vendor{}).Where("email = ?", email).Update("last_login", now).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("failed to stamp last_login:", err)
	}
}

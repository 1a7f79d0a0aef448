package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/auth"
	"github.com/p-bittencourt/studious-waffle/httperr"
)

const accountKey = "account"

// RequireAuth validates the bearer token and resolves the account behind it
// (shopper first, then vendor). The resolved account is stored on the
// context for handlers and role guards.
func RequireAuth(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header is missing"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header"})
			return
		}

		email, err := auth.DecodeToken(parts[1], secret)
		if err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}

		account, err := auth.ResolveAccount(db, email)
		if err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}
		if account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}

// RequireShopper rejects requests not authenticated as a shopper.
func RequireShopper() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok || account.Kind != auth.KindShopper {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Shopper account required"})
			return
		}
		c.Next()
	}
}

// RequireVendor rejects requests not authenticated as a vendor.
func RequireVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok || account.Kind != auth.KindVendor {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Vendor account required"})
			return
		}
		c.Next()
	}
}

// CurrentAccount returns the account RequireAuth stored on the context.
func CurrentAccount(c *gin.Context) (*auth.Account, bool) {
	value, exists := c.Get(accountKey)
	if !exists {
		return nil, false
	}
	account, ok := value.(*auth.Account)
	return account, ok
}

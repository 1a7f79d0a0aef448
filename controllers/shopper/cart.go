package shopperControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/httperr"
	"github.com/p-bittencourt/studious-waffle/models"
	"github.com/p-bittencourt/studious-waffle/repository"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// AddToCart merges a product into the shopper's cart: an existing entry has
// its quantity incremented, otherwise a new entry is appended. The whole
// cart column is written back as one unit, under a row lock on the shopper
// so concurrent adds cannot overwrite each other.
func AddToCart(db *gorm.DB, shopperID, productID uint, quantity int) (*models.Shopper, error) {
	var shopper models.Shopper
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repository.LockForUpdate(tx).First(&shopper, shopperID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NotFound("Shopper not found")
			}
			return err
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.BadRequest(fmt.Sprintf("Product #%d does not exist", productID))
			}
			return err
		}

		cart := shopper.ShoppingCart
		found := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity += quantity
				found = true
				break
			}
		}
		if !found {
			cart.Items = append(cart.Items, models.CartEntry{ProductID: productID, Quantity: quantity})
		}

		return saveCart(tx, &shopper, cart)
	})
	if err != nil {
		return nil, err
	}
	return &shopper, nil
}

// RemoveFromCart decrements an entry's quantity, dropping the entry when the
// requested quantity reaches or exceeds what is in the cart. A product that
// is not in the cart is logged and the cart persisted unchanged.
func RemoveFromCart(db *gorm.DB, shopperID, productID uint, quantity int) (*models.Shopper, error) {
	if quantity < 1 {
		quantity = 1
	}
	var shopper models.Shopper
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repository.LockForUpdate(tx).First(&shopper, shopperID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NotFound("Shopper not found")
			}
			return err
		}

		cart := shopper.ShoppingCart
		if len(cart.Items) == 0 {
			cart.Items = []models.CartEntry{}
			return saveCart(tx, &shopper, cart)
		}

		found := false
		for i := range cart.Items {
			if cart.Items[i].ProductID != productID {
				continue
			}
			found = true
			if quantity >= cart.Items[i].Quantity {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity -= quantity
			}
			break
		}
		if !found {
			log.Printf("product %d not found in shopper %d's cart", productID, shopperID)
		}

		return saveCart(tx, &shopper, cart)
	})
	if err != nil {
		return nil, err
	}
	return &shopper, nil
}

// ClearCart replaces the cart with an empty item list and a fresh timestamp.
func ClearCart(db *gorm.DB, shopperID uint) (*models.Shopper, error) {
	var shopper models.Shopper
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repository.LockForUpdate(tx).First(&shopper, shopperID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NotFound("Shopper not found")
			}
			return err
		}
		return saveCart(tx, &shopper, models.ShoppingCart{Items: []models.CartEntry{}})
	})
	if err != nil {
		return nil, err
	}
	return &shopper, nil
}

func saveCart(tx *gorm.DB, shopper *models.Shopper, cart models.ShoppingCart) error {
	now := time.Now().UTC()
	cart.UpdatedAt = &now
	shopper.ShoppingCart = cart
	return tx.Model(shopper).Update("shopping_cart", cart).Error
}

// POST /shoppers/:id/cart/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		shopper, err := AddToCart(db, id, input.ProductID, input.Quantity)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, shopper)
	}
}

// DELETE /shoppers/:id/cart/items/:product_id?quantity=n
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			httperr.Respond(c, httperr.BadRequest("Invalid product id"))
			return
		}
		quantity := 1
		if raw := c.Query("quantity"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				httperr.Respond(c, httperr.BadRequest("Invalid quantity"))
				return
			}
			quantity = parsed
		}
		shopper, err := RemoveFromCart(db, id, uint(productID), quantity)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, shopper)
	}
}

// DELETE /shoppers/:id/cart
func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		shopper, err := ClearCart(db, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, shopper)
	}
}

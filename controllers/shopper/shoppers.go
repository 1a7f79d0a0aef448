package shopperControllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/auth"
	"github.com/p-bittencourt/studious-waffle/httperr"
	"github.com/p-bittencourt/studious-waffle/models"
	"github.com/p-bittencourt/studious-waffle/repository"
)

type SignupInput struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

type UpdateShopperInput struct {
	Name           *string              `json:"name"`
	PhoneNumber    *string              `json:"phone_number"`
	Email          *string              `json:"email"`
	Status         *models.UserStatus   `json:"status"`
	Preferences    *models.JSONMap      `json:"preferences"`
	PaymentMethods *models.MapList      `json:"payment_methods"`
	Wishlist       *models.IDList       `json:"wishlist"`
	SearchHistory  *models.StringList   `json:"search_history"`
	OrderHistory   *models.IDList       `json:"order_history"`
	Locations      *models.LocationList `json:"locations"`
}

// POST /shoppers/signup
func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		shopper := models.Shopper{
			Name:         input.Name,
			PhoneNumber:  input.PhoneNumber,
			Email:        input.Email,
			PasswordHash: hash,
			Status:       models.UserStatusActive,
			CreatedAt:    time.Now().UTC(),
			ShoppingCart: models.ShoppingCart{Items: []models.CartEntry{}},
		}
		if err := repository.Create(db, &shopper); err != nil {
			log.Println("failed to create shopper:", err)
			httperr.Respond(c, httperr.BadRequest("User registration failed"))
			return
		}

		log.Printf("created shopper %s with email %s", shopper.Name, shopper.Email)
		c.JSON(http.StatusCreated, shopper)
	}
}

// GET /shoppers
func GetShoppers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shoppers, err := repository.List[models.Shopper](db)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, shoppers)
	}
}

// GET /shoppers/:id
func GetShopperByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		shopper, err := repository.GetByID[models.Shopper](db, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, shopper)
	}
}

// PATCH /shoppers/:id
func UpdateShopper(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		shopper, err := repository.GetByID[models.Shopper](db, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		var input UpdateShopperInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.PhoneNumber != nil {
			updates["phone_number"] = *input.PhoneNumber
		}
		if input.Email != nil {
			updates["email"] = *input.Email
		}
		if input.Status != nil {
			updates["status"] = *input.Status
		}
		if input.Preferences != nil {
			updates["preferences"] = *input.Preferences
		}
		if input.PaymentMethods != nil {
			updates["payment_methods"] = *input.PaymentMethods
		}
		if input.Wishlist != nil {
			updates["wishlist"] = *input.Wishlist
		}
		if input.SearchHistory != nil {
			updates["search_history"] = *input.SearchHistory
		}
		if input.OrderHistory != nil {
			updates["order_history"] = *input.OrderHistory
		}
		if input.Locations != nil {
			updates["locations"] = *input.Locations
		}

		if err := repository.Update(db, shopper, updates); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, shopper)
	}
}

// DELETE /shoppers/:id
func DeleteShopper(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		shopper, err := repository.GetByID[models.Shopper](db, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if err := repository.Delete(db, shopper); err != nil {
			httperr.Respond(c, err)
			return
		}
		log.Printf("deleted shopper #%d", id)
		c.Status(http.StatusNoContent)
	}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, httperr.BadRequest("Invalid id")
	}
	return uint(id), nil
}

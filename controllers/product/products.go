package productcontroller

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/httperr"
	"github.com/p-bittencourt/studious-waffle/middleware"
	"github.com/p-bittencourt/studious-waffle/models"
	"github.com/p-bittencourt/studious-waffle/repository"
)

type CreateProductInput struct {
	Name        string                 `json:"name" binding:"required"`
	Price       float64                `json:"price" binding:"required,gt=0"`
	Description string                 `json:"description"`
	Category    models.ProductCategory `json:"category"`
	Tags        models.StringList      `json:"tags"`
	SKU         *string                `json:"sku"`
	Stock       int                    `json:"stock"`
}

type UpdateProductInput struct {
	Name               *string                 `json:"name"`
	Price              *float64                `json:"price"`
	Description        *string                 `json:"description"`
	Category           *models.ProductCategory `json:"category"`
	Tags               *models.StringList      `json:"tags"`
	SKU                *string                 `json:"sku"`
	Rating             *float64                `json:"rating"`
	Stock              *int                    `json:"stock"`
	Status             *models.ProductStatus   `json:"status"`
	DiscountPercentage *float64                `json:"discount_percentage"`
}

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repository.List[models.Product](db)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		product, err := repository.GetByID[models.Product](db, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /products (vendor only; the product is attached to the caller)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := middleware.CurrentAccount(c)
		if !ok || account.Vendor == nil {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Vendor account required"})
			return
		}

		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		if input.Category == "" {
			input.Category = models.CategoryOther
		}
		if !models.ValidCategory(input.Category) {
			httperr.Respond(c, httperr.BadRequest("Invalid product category"))
			return
		}

		vendorID := account.Vendor.ID
		product := models.Product{
			Name:        input.Name,
			Price:       input.Price,
			Description: input.Description,
			Category:    input.Category,
			Tags:        input.Tags,
			SKU:         input.SKU,
			Stock:       input.Stock,
			Status:      models.ProductStatusActive,
			VendorID:    &vendorID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := repository.Create(db, &product); err != nil {
			httperr.Respond(c, err)
			return
		}

		log.Printf("vendor #%d created product %s", vendorID, product.Name)
		c.JSON(http.StatusCreated, product)
	}
}

// PATCH /products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		product, err := repository.GetByID[models.Product](db, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				httperr.Respond(c, httperr.BadRequest("Price must be greater than zero"))
				return
			}
			updates["price"] = *input.Price
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Category != nil {
			if !models.ValidCategory(*input.Category) {
				httperr.Respond(c, httperr.BadRequest("Invalid product category"))
				return
			}
			updates["category"] = *input.Category
		}
		if input.Tags != nil {
			updates["tags"] = *input.Tags
		}
		if input.SKU != nil {
			updates["sku"] = *input.SKU
		}
		if input.Rating != nil {
			updates["rating"] = *input.Rating
		}
		if input.Stock != nil {
			updates["stock"] = *input.Stock
		}
		if input.Status != nil {
			updates["status"] = *input.Status
		}
		if input.DiscountPercentage != nil {
			updates["discount_percentage"] = *input.DiscountPercentage
		}

		if err := repository.Update(db, product, updates); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		product, err := repository.GetByID[models.Product](db, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if err := repository.Delete(db, product); err != nil {
			httperr.Respond(c, err)
			return
		}
		log.Printf("deleted product #%d", id)
		c.Status(http.StatusNoContent)
	}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, httperr.BadRequest("Invalid product id")
	}
	return uint(id), nil
}

package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/httperr"
	"github.com/p-bittencourt/studious-waffle/middleware"
	"github.com/p-bittencourt/studious-waffle/models"
	"github.com/p-bittencourt/studious-waffle/repository"
)

type OrderItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderInput struct {
	PaymentMethod     string           `json:"payment_method"`
	DeliveryLocation  models.Location  `json:"delivery_location"`
	ShippingMethod    string           `json:"shipping_method"`
	EstimatedDelivery *time.Time       `json:"estimated_delivery"`
	DiscountCode      *string          `json:"discount_code"`
	DiscountAmount    float64          `json:"discount_amount"`
	TaxAmount         float64          `json:"tax_amount"`
	ShippingCost      float64          `json:"shipping_cost"`
	OrderedItems      []OrderItemInput `json:"ordered_items" binding:"required,min=1,dive"`
}

type UpdateOrderInput struct {
	Status            *models.OrderStatus   `json:"status"`
	PaymentMethod     *string               `json:"payment_method"`
	PaymentStatus     *models.PaymentStatus `json:"payment_status"`
	DeliveryLocation  *models.Location      `json:"delivery_location"`
	ShippingMethod    *string               `json:"shipping_method"`
	TrackingNumber    *string               `json:"tracking_number"`
	EstimatedDelivery *time.Time            `json:"estimated_delivery"`
	DiscountCode      *string               `json:"discount_code"`
	DiscountAmount    *float64              `json:"discount_amount"`
	TaxAmount         *float64              `json:"tax_amount"`
	ShippingCost      *float64              `json:"shipping_cost"`
	DeliveredAt       *time.Time            `json:"delivered_at"`
}

func newTrackingNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder turns an order request into an Order plus one OrderItem per
// line. Every referenced product must exist; the first missing id aborts
// the whole transaction, so either the order and all of its items commit or
// nothing does. Unit prices are snapshotted from the product's current
// price and never change afterwards.
func PlaceOrder(db *gorm.DB, shopperID uint, input PlaceOrderInput) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(input.OrderedItems))

		for _, line := range input.OrderedItems {
			var product models.Product
			if err := repository.LockForUpdate(tx).First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return httperr.BadRequest(fmt.Sprintf(
						"Product #%d does not exist; provide a valid product_id to confirm the order",
						line.ProductID,
					))
				}
				return err
			}

			unitPrice := decimal.NewFromFloat(product.Price)
			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			subtotal = subtotal.Add(lineTotal)

			items = append(items, models.OrderItem{
				ProductID:  product.ID,
				Quantity:   line.Quantity,
				UnitPrice:  product.Price,
				TotalPrice: lineTotal.InexactFloat64(),
			})

			if err := tx.Model(&product).
				Update("sales_count", gorm.Expr("sales_count + ?", line.Quantity)).Error; err != nil {
				return err
			}
		}

		total := subtotal.
			Add(decimal.NewFromFloat(input.TaxAmount)).
			Add(decimal.NewFromFloat(input.ShippingCost)).
			Sub(decimal.NewFromFloat(input.DiscountAmount))

		order = models.Order{
			ShopperID:         shopperID,
			Status:            models.OrderStatusInProgress,
			Items:             items,
			PaymentMethod:     input.PaymentMethod,
			PaymentStatus:     models.PaymentStatusPending,
			DeliveryLocation:  input.DeliveryLocation,
			ShippingMethod:    input.ShippingMethod,
			TrackingNumber:    newTrackingNumber(),
			EstimatedDelivery: input.EstimatedDelivery,
			DiscountCode:      input.DiscountCode,
			DiscountAmount:    input.DiscountAmount,
			Subtotal:          subtotal.InexactFloat64(),
			TaxAmount:         input.TaxAmount,
			ShippingCost:      input.ShippingCost,
			TotalValue:        total.InexactFloat64(),
			CreatedAt:         time.Now().UTC(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return appendOrderHistory(tx, shopperID, order.ID)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("shopper #%d placed order #%d (total %.2f)", shopperID, order.ID, order.TotalValue)
	broadcastOrderEvent("order_created", order)
	return &order, nil
}

func appendOrderHistory(tx *gorm.DB, shopperID, orderID uint) error {
	var shopper models.Shopper
	if err := tx.First(&shopper, shopperID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("Shopper not found")
		}
		return err
	}
	history := append(shopper.OrderHistory, orderID)
	return tx.Model(&shopper).Update("order_history", history).Error
}

// GET /orders
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		var order models.Order
		if err := db.Preload("Items").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("Order not found"))
				return
			}
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /orders (shopper only)
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := middleware.CurrentAccount(c)
		if !ok || account.Shopper == nil {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Shopper account required"})
			return
		}

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		order, err := PlaceOrder(db, account.Shopper.ID, input)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// PATCH /orders/:id
func UpdateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		order, err := repository.GetByID[models.Order](db, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		var input UpdateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Status != nil {
			if !order.Status.LegalTransition(*input.Status) {
				httperr.Respond(c, httperr.BadRequest(fmt.Sprintf(
					"Illegal status transition %s -> %s", order.Status, *input.Status,
				)))
				return
			}
			updates["status"] = *input.Status
		}
		if input.PaymentMethod != nil {
			updates["payment_method"] = *input.PaymentMethod
		}
		if input.PaymentStatus != nil {
			updates["payment_status"] = *input.PaymentStatus
		}
		if input.DeliveryLocation != nil {
			updates["delivery_location"] = *input.DeliveryLocation
		}
		if input.ShippingMethod != nil {
			updates["shipping_method"] = *input.ShippingMethod
		}
		if input.TrackingNumber != nil {
			updates["tracking_number"] = *input.TrackingNumber
		}
		if input.EstimatedDelivery != nil {
			updates["estimated_delivery"] = *input.EstimatedDelivery
		}
		if input.DiscountCode != nil {
			updates["discount_code"] = *input.DiscountCode
		}
		if input.DiscountAmount != nil {
			updates["discount_amount"] = *input.DiscountAmount
		}
		if input.TaxAmount != nil {
			updates["tax_amount"] = *input.TaxAmount
		}
		if input.ShippingCost != nil {
			updates["shipping_cost"] = *input.ShippingCost
		}
		if input.DeliveredAt != nil {
			updates["delivered_at"] = *input.DeliveredAt
		}

		if err := repository.Update(db, order, updates); err != nil {
			httperr.Respond(c, err)
			return
		}

		if input.Status != nil {
			broadcastOrderEvent("order_status_changed", *order)
		}
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /orders/:id
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		order, err := repository.GetByID[models.Order](db, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(order).Error
		})
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		log.Printf("deleted order #%d", id)
		c.Status(http.StatusNoContent)
	}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, httperr.BadRequest("Invalid order id")
	}
	return uint(id), nil
}

package models

import "time"

type ProductCategory string

const (
	CategoryElectronics ProductCategory = "ELECTRONICS"
	CategoryClothing    ProductCategory = "CLOTHING"
	CategoryHomeGoods   ProductCategory = "HOME_GOODS"
	CategoryBeauty      ProductCategory = "BEAUTY"
	CategoryFood        ProductCategory = "FOOD"
	CategoryOther       ProductCategory = "OTHER"
)

type ProductStatus string

const (
	ProductStatusActive        ProductStatus = "ACTIVE"
	ProductStatusOutOfStock    ProductStatus = "OUT_OF_STOCK"
	ProductStatusDiscontinued  ProductStatus = "DISCONTINUED"
	ProductStatusPendingReview ProductStatus = "PENDING_REVIEW"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Price       float64         `gorm:"not null" json:"price"`
	Description string          `json:"description"`
	Category    ProductCategory `gorm:"type:varchar(16);default:'OTHER'" json:"category"`
	Tags        StringList      `gorm:"type:jsonb" json:"tags"`
	SKU         *string         `gorm:"index" json:"sku"`

	// Owning vendor. No DB-level cascade: historical orders keep referencing
	// products by id even after the vendor or product row is gone.
	VendorID *uint `gorm:"index" json:"vendor_id"`

	Rating             *float64      `json:"rating"`
	Stock              int           `json:"stock"`
	Status             ProductStatus `gorm:"type:varchar(16);default:'ACTIVE'" json:"status"`
	ViewsCount         int           `json:"views_count"`
	SalesCount         int           `json:"sales_count"`
	DiscountPercentage float64       `json:"discount_percentage"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          *time.Time    `json:"updated_at"`
}

// ValidCategory reports whether s is one of the known product categories.
func ValidCategory(s ProductCategory) bool {
	switch s {
	case CategoryElectronics, CategoryClothing, CategoryHomeGoods,
		CategoryBeauty, CategoryFood, CategoryOther:
		return true
	}
	return false
}

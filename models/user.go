package models

import "time"

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// Shopper and Vendor are two independent user tables sharing the same core
// columns. Lookups that need "whoever owns this email" try shoppers first,
// then vendors.

type Shopper struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	PhoneNumber  string     `json:"phone_number"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Status       UserStatus `gorm:"type:varchar(16);default:'ACTIVE'" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`

	Preferences    JSONMap      `gorm:"type:jsonb" json:"preferences"`
	PaymentMethods MapList      `gorm:"type:jsonb" json:"payment_methods"`
	Wishlist       IDList       `gorm:"type:jsonb" json:"wishlist"`
	SearchHistory  StringList   `gorm:"type:jsonb" json:"search_history"`
	OrderHistory   IDList       `gorm:"type:jsonb" json:"order_history"`
	Locations      LocationList `gorm:"type:jsonb" json:"locations"`
	ShoppingCart   ShoppingCart `gorm:"type:jsonb" json:"shopping_cart"`
}

type Vendor struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	PhoneNumber  string     `json:"phone_number"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Status       UserStatus `gorm:"type:varchar(16);default:'ACTIVE'" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`

	Rating     *float64     `json:"rating"` // 0-5, unset until first review
	BankInfo   JSONMap      `gorm:"type:jsonb" json:"bank_info"`
	Commission float64      `json:"commission"`
	Specialty  string       `json:"specialty"`
	Locations  LocationList `gorm:"type:jsonb" json:"locations"`
}

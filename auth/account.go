package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/models"
)

type AccountKind string

const (
	KindShopper AccountKind = "shopper"
	KindVendor  AccountKind = "vendor"
)

// Account is the resolved identity behind a bearer token: either a shopper
// or a vendor. Role-restricted routes switch on Kind instead of type
// checks.
type Account struct {
	Kind    AccountKind
	Shopper *models.Shopper
	Vendor  *models.Vendor
}

func (a Account) Email() string {
	if a.Kind == KindShopper {
		return a.Shopper.Email
	}
	return a.Vendor.Email
}

func (a Account) ID() uint {
	if a.Kind == KindShopper {
		return a.Shopper.ID
	}
	return a.Vendor.ID
}

// ResolveAccount finds the user owning an email. Shoppers are tried first,
// then vendors; a miss on both means the token holder no longer exists.
func ResolveAccount(db *gorm.DB, email string) (*Account, error) {
	var shopper models.Shopper
	err := db.Where("email = ?", email).First(&shopper).Error
	if err == nil {
		return &Account{Kind: KindShopper, Shopper: &shopper}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var vendor models.Vendor
	err = db.Where("email = ?", email).First(&vendor).Error
	if err == nil {
		return &Account{Kind: KindVendor, Vendor: &vendor}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return nil, nil
}

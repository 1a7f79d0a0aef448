package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// The nested structures on users and orders (locations, preferences, bank
// info, the shopping cart) live in JSON columns. Each column type below
// serializes itself only at the storage boundary via Valuer/Scanner.

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("cannot scan %T into %T", value, dest)
	}
}

// JSONMap stores loosely keyed data such as shopper preferences or vendor
// bank info.
type JSONMap map[string]interface{}

func (m *JSONMap) Scan(value interface{}) error { return scanJSON(value, m) }

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	return json.Marshal(m)
}

// MapList stores a list of loosely keyed records, e.g. payment methods.
type MapList []map[string]interface{}

func (l *MapList) Scan(value interface{}) error { return scanJSON(value, l) }

func (l MapList) Value() (driver.Value, error) {
	if l == nil {
		l = MapList{}
	}
	return json.Marshal(l)
}

// StringList stores a plain list of strings (tags, search history).
type StringList []string

func (l *StringList) Scan(value interface{}) error { return scanJSON(value, l) }

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// IDList stores referenced entity ids (wishlist, order history).
type IDList []uint

func (l *IDList) Scan(value interface{}) error { return scanJSON(value, l) }

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	return json.Marshal(l)
}

// Location is an address record. Users carry a list of them; orders embed a
// single delivery location.
type Location struct {
	Type       string `json:"type"` // e.g. house, office, warehouse, point of sale
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	ZipCode    string `json:"zip_code"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

func (l *Location) Scan(value interface{}) error { return scanJSON(value, l) }

func (l Location) Value() (driver.Value, error) { return json.Marshal(l) }

// LocationList stores the addresses attached to a shopper or vendor.
type LocationList []Location

func (l *LocationList) Scan(value interface{}) error { return scanJSON(value, l) }

func (l LocationList) Value() (driver.Value, error) {
	if l == nil {
		l = LocationList{}
	}
	return json.Marshal(l)
}

// CartEntry is one line of a shopping cart. Entries are keyed uniquely by
// product id; adding an existing product increments the quantity instead of
// appending a duplicate.
type CartEntry struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// ShoppingCart is persisted as a single JSON column on the shopper row and
// always written as one unit.
type ShoppingCart struct {
	Items     []CartEntry `json:"items"`
	UpdatedAt *time.Time  `json:"updated_at"`
}

func (s *ShoppingCart) Scan(value interface{}) error { return scanJSON(value, s) }

func (s ShoppingCart) Value() (driver.Value, error) {
	if s.Items == nil {
		s.Items = []CartEntry{}
	}
	return json.Marshal(s)
}

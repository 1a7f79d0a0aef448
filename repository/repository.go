// Package repository provides the shared persistence helpers used by every
// entity. One set of generic functions replaces per-entity repositories.
package repository

import (
	"errors"
	"fmt"
	"log"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/p-bittencourt/studious-waffle/httperr"
)

func entityName[T any]() string {
	var zero T
	return reflect.TypeOf(zero).Name()
}

// GetByID loads one record by primary key. A miss is always a typed
// NotFound, never a silent nil.
func GetByID[T any](db *gorm.DB, id uint) (*T, error) {
	var item T
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("%s #%d was not found", entityName[T](), id)
			return nil, httperr.NotFound(fmt.Sprintf("%s not found", entityName[T]()))
		}
		return nil, err
	}
	return &item, nil
}

// GetByField loads one record matching a single column value.
func GetByField[T any](db *gorm.DB, field string, value interface{}) (*T, error) {
	var item T
	if err := db.Where(fmt.Sprintf("%s = ?", field), value).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound(fmt.Sprintf("%s not found", entityName[T]()))
		}
		return nil, err
	}
	return &item, nil
}

// List returns every record of the entity.
func List[T any](db *gorm.DB) ([]T, error) {
	var items []T
	if err := db.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts the record.
func Create[T any](db *gorm.DB, item *T) error {
	return db.Create(item).Error
}

// Update applies a partial update. Callers build the updates map from the
// non-nil fields of their input payload; an empty map is a BadRequest.
func Update[T any](db *gorm.DB, item *T, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return httperr.BadRequest("No update data provided")
	}
	return db.Model(item).Updates(updates).Error
}

// Delete hard-deletes the record.
func Delete[T any](db *gorm.DB, item *T) error {
	return db.Delete(item).Error
}

// LockForUpdate takes a row-level lock inside a transaction. The sqlite
// dialect used in tests has no FOR UPDATE support, so the clause is applied
// on postgres only.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

package repository

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/httperr"
	"github.com/p-bittencourt/studious-waffle/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()
	product := models.Product{Name: "Mechanical Keyboard", Price: 79.90, Category: models.CategoryElectronics}
	require.NoError(t, Create(db, &product))
	return &product
}

func TestGetByIDMissIsNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := GetByID[models.Product](db, 9999)
	require.Error(t, err)

	var apiErr *httperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Product not found", apiErr.Detail)
}

func TestGetByID(t *testing.T) {
	db := newTestDB(t)
	seeded := seedProduct(t, db)

	got, err := GetByID[models.Product](db, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Name, got.Name)
}

func TestGetByField(t *testing.T) {
	db := newTestDB(t)
	seeded := seedProduct(t, db)

	got, err := GetByField[models.Product](db, "name", seeded.Name)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)

	_, err = GetByField[models.Product](db, "name", "does not exist")
	var apiErr *httperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestUpdateAppliesOnlyGivenFields(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db)

	err := Update(db, product, map[string]interface{}{"price": 9.99})
	require.NoError(t, err)

	got, err := GetByID[models.Product](db, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.99, got.Price)
	assert.Equal(t, "Mechanical Keyboard", got.Name)
}

func TestUpdateEmptyIsBadRequest(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db)

	err := Update(db, product, map[string]interface{}{})
	require.Error(t, err)

	var apiErr *httperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestDeleteIsHardDelete(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db)

	require.NoError(t, Delete(db, product))

	_, err := GetByID[models.Product](db, product.ID)
	var apiErr *httperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestList(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db)
	seedProduct(t, db)

	products, err := List[models.Product](db)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/config"
	"github.com/p-bittencourt/studious-waffle/models"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Shopper{}, &models.Vendor{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	))

	r := gin.New()
	SetupRoutes(r, db, config.Config{JWTSecret: "test-secret"})
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	assert.Equal(t, "bearer", token.TokenType)
	return token.AccessToken
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := newTestServer(t)

	signup := doJSON(t, r, http.MethodPost, "/shoppers/signup", "", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, signup.Code, signup.Body.String())

	form := url.Values{}
	form.Set("username", "ana@example.com")
	form.Set("password", "wrong password")
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/shoppers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGuards(t *testing.T) {
	r, _ := newTestServer(t)

	signup := doJSON(t, r, http.MethodPost, "/shoppers/signup", "", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, signup.Code)
	shopperToken := login(t, r, "ana@example.com", "supersecret")

	// a shopper may not create products
	w := doJSON(t, r, http.MethodPost, "/products", shopperToken, gin.H{
		"name": "Lamp", "price": 10.0,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// a vendor may not list shoppers
	vendorSignup := doJSON(t, r, http.MethodPost, "/vendors/signup", "", gin.H{
		"name": "Loja da Ana", "email": "loja@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, vendorSignup.Code)
	vendorToken := login(t, r, "loja@example.com", "supersecret")

	w = doJSON(t, r, http.MethodGet, "/shoppers", vendorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVendorProductCRUD(t *testing.T) {
	r, _ := newTestServer(t)

	signup := doJSON(t, r, http.MethodPost, "/vendors/signup", "", gin.H{
		"name": "Loja", "email": "loja@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, signup.Code)
	token := login(t, r, "loja@example.com", "supersecret")

	created := doJSON(t, r, http.MethodPost, "/products", token, gin.H{
		"name": "Desk Lamp", "price": 35.5, "category": "HOME_GOODS", "stock": 12,
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var product models.Product
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &product))
	require.NotNil(t, product.VendorID)
	assert.Equal(t, models.CategoryHomeGoods, product.Category)

	// partial update touches only the given field
	patched := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/products/%d", product.ID), token, gin.H{
		"price": 9.99,
	})
	require.Equal(t, http.StatusOK, patched.Code)

	got := doJSON(t, r, http.MethodGet, fmt.Sprintf("/products/%d", product.ID), "", nil)
	require.Equal(t, http.StatusOK, got.Code)
	var reloaded models.Product
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &reloaded))
	assert.Equal(t, 9.99, reloaded.Price)
	assert.Equal(t, "Desk Lamp", reloaded.Name)

	// empty update payload is a 400
	empty := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/products/%d", product.ID), token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, empty.Code)

	// lookups on a missing id are a 404
	missing := doJSON(t, r, http.MethodGet, "/products/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)

	deleted := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)
}

func TestShopperOrderFlow(t *testing.T) {
	r, db := newTestServer(t)

	// products exist ahead of the flow
	p1 := models.Product{Name: "P1", Price: 10.0, Category: models.CategoryOther}
	p2 := models.Product{Name: "P2", Price: 5.0, Category: models.CategoryOther}
	require.NoError(t, db.Create(&p1).Error)
	require.NoError(t, db.Create(&p2).Error)

	signup := doJSON(t, r, http.MethodPost, "/shoppers/signup", "", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, signup.Code, signup.Body.String())
	var shopper models.Shopper
	require.NoError(t, json.Unmarshal(signup.Body.Bytes(), &shopper))

	token := login(t, r, "ana@example.com", "supersecret")

	// add both products to the cart
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/shoppers/%d/cart/items", shopper.ID), token, gin.H{
		"product_id": p1.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/shoppers/%d/cart/items", shopper.ID), token, gin.H{
		"product_id": p2.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var afterCart models.Shopper
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &afterCart))
	require.Len(t, afterCart.ShoppingCart.Items, 2)

	// place the order for the carted items
	placed := doJSON(t, r, http.MethodPost, "/orders", token, gin.H{
		"payment_method": "card",
		"ordered_items": []gin.H{
			{"product_id": p1.ID, "quantity": 2},
			{"product_id": p2.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, placed.Code, placed.Body.String())
	var order models.Order
	require.NoError(t, json.Unmarshal(placed.Body.Bytes(), &order))

	got := doJSON(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), "", nil)
	require.Equal(t, http.StatusOK, got.Code)
	var fetched models.Order
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &fetched))

	require.Len(t, fetched.Items, 2)
	var total float64
	for _, item := range fetched.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	assert.Equal(t, total, fetched.TotalValue)
	assert.Equal(t, 25.0, fetched.TotalValue)

	// ordering a product that does not exist aborts with a 400
	bad := doJSON(t, r, http.MethodPost, "/orders", token, gin.H{
		"ordered_items": []gin.H{{"product_id": 99999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestOrderStatusUpdateEnforcesTransitions(t *testing.T) {
	r, db := newTestServer(t)

	product := models.Product{Name: "P1", Price: 10.0, Category: models.CategoryOther}
	require.NoError(t, db.Create(&product).Error)

	signup := doJSON(t, r, http.MethodPost, "/shoppers/signup", "", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, signup.Code)
	token := login(t, r, "ana@example.com", "supersecret")

	placed := doJSON(t, r, http.MethodPost, "/orders", token, gin.H{
		"ordered_items": []gin.H{{"product_id": product.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, placed.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(placed.Body.Bytes(), &order))

	// IN_PROGRESS -> CONCLUDED is legal
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/orders/%d", order.ID), token, gin.H{
		"status": "CONCLUDED",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// CONCLUDED is terminal
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/orders/%d", order.ID), token, gin.H{
		"status": "CANCELLED",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

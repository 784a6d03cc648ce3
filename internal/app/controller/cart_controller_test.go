package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/repository"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/service"
	"github.com/toshniwal-akshay/ecommerce-project/internal/db"
	"gorm.io/gorm"
)

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := service.NewCartService(cartRepo, productRepo, testDB, 0)
	cartController := NewCartController(cartService)

	// Customer
	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		Username:     "testuser",
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(user).Error)

	// Vendor chain
	owner := &model.User{
		Email:        "owner@example.com",
		PasswordHash: "hash",
		FirstName:    "Owner",
		Username:     "owneruser",
		Role:         model.RoleVendor,
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(owner).Error)
	profile := &model.UserProfile{UserID: owner.ID}
	require.NoError(t, testDB.Create(profile).Error)
	vendor := &model.Vendor{
		UserID:        owner.ID,
		UserProfileID: profile.ID,
		ShopName:      "Test Shop",
		IsApproved:    true,
	}
	require.NoError(t, testDB.Create(vendor).Error)
	category := &model.Category{VendorID: vendor.ID, Name: "Snacks"}
	require.NoError(t, testDB.Create(category).Error)
	product := &model.Product{
		VendorID:    vendor.ID,
		CategoryID:  category.ID,
		Name:        "Test Product",
		Price:       100,
		IsAvailable: true,
	}
	require.NoError(t, testDB.Create(product).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return cartController, router, testDB, user, product
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCartController_AddToCart_Success(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.GET("/cart/add/:product_id", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		controller.AddToCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/cart/add/%d", product.ID), nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Success", body["status"])
	assert.Equal(t, "Added the product to the cart", body["message"])
	assert.Equal(t, float64(1), body["cart_counter"])
	assert.Equal(t, float64(1), body["qty"])

	amounts, ok := body["cart_amount"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(100), amounts["subtotal"])
	assert.Equal(t, float64(100), amounts["grand_total"])
}

func TestCartController_AddToCart_SecondAddIncrements(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.GET("/cart/add/:product_id", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		controller.AddToCart(c)
	})

	url := fmt.Sprintf("/cart/add/%d", product.ID)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if i == 1 {
			body := decodeBody(t, w)
			assert.Equal(t, "Success", body["status"])
			assert.Equal(t, "Increased the cart quantity", body["message"])
			assert.Equal(t, float64(2), body["qty"])
		}
	}
}

func TestCartController_AddToCart_NotAjax(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	router.GET("/cart/add/:product_id", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		controller.AddToCart(c)
	})

	// No X-Requested-With header
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/cart/add/%d", product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Failed", body["status"])
	assert.Equal(t, "Invalid request!", body["message"])

	// The cart was never touched
	var count int64
	testDB.Model(&model.CartItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCartController_AddToCart_Guest(t *testing.T) {
	controller, router, _, _, product := setupCartControllerTest(t)

	// No user in context
	router.GET("/cart/add/:product_id", controller.AddToCart)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/cart/add/%d", product.ID), nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "login_required", body["status"])
	assert.Equal(t, "Please login to continue", body["message"])
}

func TestCartController_AddToCart_UnknownProduct(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.GET("/cart/add/:product_id", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		controller.AddToCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart/add/9999", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := decodeBody(t, w)
	assert.Equal(t, "Failed", body["status"])
	assert.Equal(t, "This product does not exist!", body["message"])
}

func TestCartController_DecreaseCart_NotInCart(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.GET("/cart/decrease/:product_id", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		controller.DecreaseCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/cart/decrease/%d", product.ID), nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := decodeBody(t, w)
	assert.Equal(t, "Failed", body["status"])
	assert.Equal(t, "You do not have this item in your cart!", body["message"])
}

func TestCartController_DeleteCartItem_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, testDB.Create(item).Error)

	router.GET("/cart/delete/:cart_id", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		controller.DeleteCartItem(c)
	})

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/cart/delete/%d", item.ID), nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := decodeBody(t, w)
	assert.Equal(t, "Success", body["status"])
	assert.Equal(t, "Cart item has been deleted!", body["message"])
	assert.Equal(t, float64(0), body["cart_counter"])
}

func TestCartController_DeleteCartItem_UnknownItem(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.GET("/cart/delete/:cart_id", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		controller.DeleteCartItem(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart/delete/9999", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := decodeBody(t, w)
	assert.Equal(t, "Failed", body["status"])
	assert.Equal(t, "Cart item does not exist!", body["message"])
}

func TestCartController_GetCart(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	require.NoError(t, testDB.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  3,
	}).Error)

	router.GET("/cart", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["cart_counter"])

	items, ok := body["cart_items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}

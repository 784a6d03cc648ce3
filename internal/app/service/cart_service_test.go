package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/repository"
	"github.com/toshniwal-akshay/ecommerce-project/internal/db"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T, taxRate float64) (CartService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo, testDB, taxRate)

	// Customer
	user := &model.User{
		Email:        "customer@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		Username:     "customer1",
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(user).Error)

	// Vendor chain: owner, profile, vendor, category, product
	owner := &model.User{
		Email:        "owner@example.com",
		PasswordHash: "hash",
		FirstName:    "Owner",
		Username:     "owner1",
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
		Price:       50,
		IsAvailable: true,
	}
	require.NoError(t, testDB.Create(product).Error)

	return cartService, user, product, testDB
}

func TestCartService_AddToCart_NewItem(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t, 0)

	summary, err := cartService.AddToCart(user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Qty)
	assert.Equal(t, 1, summary.Counter)
	assert.Equal(t, 50.0, summary.Amounts.Subtotal)
	assert.Equal(t, 50.0, summary.Amounts.GrandTotal)
}

func TestCartService_AddToCart_RepeatedAddsIncrement(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t, 0)

	var summary *CartSummary
	var err error
	for i := 0; i < 3; i++ {
		summary, err = cartService.AddToCart(user.ID, product.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, summary.Qty)
	assert.Equal(t, 3, summary.Counter)

	// Still a single row
	var count int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t, 0)

	_, err := cartService.AddToCart(user.ID, 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddToCart_UnavailableProduct(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t, 0)

	require.NoError(t, testDB.Model(product).Update("is_available", false).Error)

	_, err := cartService.AddToCart(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_DecreaseCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t, 0)

	cartService.AddToCart(user.ID, product.ID)
	cartService.AddToCart(user.ID, product.ID)

	summary, err := cartService.DecreaseCart(user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Qty)
	assert.Equal(t, 1, summary.Counter)
}

func TestCartService_DecreaseCart_AtOneDeletesRow(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t, 0)

	cartService.AddToCart(user.ID, product.ID)

	summary, err := cartService.DecreaseCart(user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Qty)
	assert.Equal(t, 0, summary.Counter)

	var count int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// A second decrease finds nothing
	_, err = cartService.DecreaseCart(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_DecreaseCart_NotInCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t, 0)

	_, err := cartService.DecreaseCart(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_DeleteCartItem(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t, 0)

	cartService.AddToCart(user.ID, product.ID)
	cartService.AddToCart(user.ID, product.ID)

	var item model.CartItem
	require.NoError(t, testDB.Where("user_id = ?", user.ID).First(&item).Error)

	summary, err := cartService.DeleteCartItem(user.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Counter)
	assert.Equal(t, 0.0, summary.Amounts.GrandTotal)
}

func TestCartService_DeleteCartItem_OtherUsersItem(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t, 0)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		FirstName:    "Other",
		Username:     "other1",
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(other).Error)

	cartService.AddToCart(other.ID, product.ID)

	var item model.CartItem
	require.NoError(t, testDB.Where("user_id = ?", other.ID).First(&item).Error)

	// Deleting through a different user reports not-found
	_, err := cartService.DeleteCartItem(user.ID, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	// The row is untouched
	var count int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", other.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCartService_Amounts_WithTax(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t, 10)

	cartService.AddToCart(user.ID, product.ID)
	cartService.AddToCart(user.ID, product.ID)

	amounts, err := cartService.Amounts(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, amounts.Subtotal)
	assert.Equal(t, 10.0, amounts.Tax)
	assert.Equal(t, 110.0, amounts.GrandTotal)
}

func TestCartService_GetUserCart_OrderedByInsertion(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t, 0)

	second := &model.Product{
		VendorID:    product.VendorID,
		CategoryID:  product.CategoryID,
		Name:        "Second Product",
		Price:       20,
		IsAvailable: true,
	}
	require.NoError(t, testDB.Create(second).Error)

	cartService.AddToCart(user.ID, product.ID)
	cartService.AddToCart(user.ID, second.ID)

	items, summary, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.Equal(t, second.ID, items[1].ProductID)
	assert.Equal(t, 2, summary.Counter)
	assert.Equal(t, 70.0, summary.Amounts.GrandTotal)
}

package service

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/repository"
	"github.com/toshniwal-akshay/ecommerce-project/internal/db"
	"gorm.io/gorm"
)

type orderTestFixture struct {
	orderService OrderService
	cartService  CartService
	user         *model.User
	vendorA      *model.Vendor
	vendorB      *model.Vendor
	productA     *model.Product // vendor A, price 500
	productB     *model.Product // vendor B, price 300
	db           *gorm.DB
}

func newTestVendor(t *testing.T, testDB *gorm.DB, email, username, shop string) *model.Vendor {
	t.Helper()

	owner := &model.User{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Owner",
		Username:     username,
		Role:         model.RoleVendor,
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(owner).Error)
	profile := &model.UserProfile{UserID: owner.ID}
	require.NoError(t, testDB.Create(profile).Error)
	vendor := &model.Vendor{
		UserID:        owner.ID,
		UserProfileID: profile.ID,
		ShopName:      shop,
		IsApproved:    true,
	}
	require.NoError(t, testDB.Create(vendor).Error)
	return vendor
}

func newTestProduct(t *testing.T, testDB *gorm.DB, vendor *model.Vendor, name string, price float64) *model.Product {
	t.Helper()

	category := &model.Category{VendorID: vendor.ID, Name: "General " + name}
	require.NoError(t, testDB.Create(category).Error)
	product := &model.Product{
		VendorID:    vendor.ID,
		CategoryID:  category.ID,
		Name:        name,
		Price:       price,
		IsAvailable: true,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func setupOrderServiceTest(t *testing.T) *orderTestFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	vendorRepo := repository.NewVendorRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	cartService := NewCartService(cartRepo, productRepo, testDB, 0)
	orderService := NewOrderService(orderRepo, cartRepo, vendorRepo, cartService, testDB)

	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		FirstName:    "Buyer",
		Username:     "buyer1",
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(user).Error)

	vendorA := newTestVendor(t, testDB, "vendora@example.com", "vendora", "Shop A")
	vendorB := newTestVendor(t, testDB, "vendorb@example.com", "vendorb", "Shop B")

	return &orderTestFixture{
		orderService: orderService,
		cartService:  cartService,
		user:         user,
		vendorA:      vendorA,
		vendorB:      vendorB,
		productA:     newTestProduct(t, testDB, vendorA, "Product A", 500),
		productB:     newTestProduct(t, testDB, vendorB, "Product B", 300),
		db:           testDB,
	}
}

func testOrderInput() OrderInput {
	return OrderInput{
		FirstName:     "Buyer",
		Phone:         "01012345678",
		Email:         "buyer@example.com",
		Address:       "1 Test Street",
		PaymentMethod: "PayPal",
	}
}

func TestOrderService_PlaceOrder_PerVendorTotals(t *testing.T) {
	f := setupOrderServiceTest(t)

	// 2x product A (500 each, vendor A) + 1x product B (300, vendor B)
	_, err := f.cartService.AddToCart(f.user.ID, f.productA.ID)
	require.NoError(t, err)
	_, err = f.cartService.AddToCart(f.user.ID, f.productA.ID)
	require.NoError(t, err)
	_, err = f.cartService.AddToCart(f.user.ID, f.productB.ID)
	require.NoError(t, err)

	order, err := f.orderService.PlaceOrder(f.user.ID, testOrderInput())
	require.NoError(t, err)

	assert.Equal(t, 1300.0, order.Total)
	assert.False(t, order.IsOrdered)

	// One key per distinct vendor, each holding that vendor's subtotal
	require.Len(t, order.TotalData, 2)
	assert.Equal(t, "1000.00", order.TotalData[f.vendorA.ID])
	assert.Equal(t, "300.00", order.TotalData[f.vendorB.ID])
}

func TestOrderService_PlaceOrder_AssignsOrderNumberAfterInsert(t *testing.T) {
	f := setupOrderServiceTest(t)

	f.cartService.AddToCart(f.user.ID, f.productA.ID)

	order, err := f.orderService.PlaceOrder(f.user.ID, testOrderInput())
	require.NoError(t, err)

	// timestamp prefix (14 digits) + primary key suffix
	require.NotEmpty(t, order.OrderNumber)
	assert.GreaterOrEqual(t, len(order.OrderNumber), 15)
	assert.Equal(t, strconv.FormatUint(uint64(order.ID), 10), order.OrderNumber[14:])

	// Persisted, not just in-memory
	var stored model.Order
	require.NoError(t, f.db.First(&stored, order.ID).Error)
	assert.Equal(t, order.OrderNumber, stored.OrderNumber)
}

func TestOrderService_PlaceOrder_AssociatesVendors(t *testing.T) {
	f := setupOrderServiceTest(t)

	f.cartService.AddToCart(f.user.ID, f.productA.ID)
	f.cartService.AddToCart(f.user.ID, f.productB.ID)

	order, err := f.orderService.PlaceOrder(f.user.ID, testOrderInput())
	require.NoError(t, err)

	var stored model.Order
	require.NoError(t, f.db.Preload("Vendors").First(&stored, order.ID).Error)
	assert.Len(t, stored.Vendors, 2)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	f := setupOrderServiceTest(t)

	order, err := f.orderService.PlaceOrder(f.user.ID, testOrderInput())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
}

func TestOrderService_PlaceOrder_LeavesCartIntact(t *testing.T) {
	f := setupOrderServiceTest(t)

	f.cartService.AddToCart(f.user.ID, f.productA.ID)

	_, err := f.orderService.PlaceOrder(f.user.ID, testOrderInput())
	require.NoError(t, err)

	// The cart survives until payment confirmation
	var count int64
	f.db.Model(&model.CartItem{}).Where("user_id = ?", f.user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOrderService_GetUserOrders_OnlyPaid(t *testing.T) {
	f := setupOrderServiceTest(t)

	f.cartService.AddToCart(f.user.ID, f.productA.ID)
	order, err := f.orderService.PlaceOrder(f.user.ID, testOrderInput())
	require.NoError(t, err)

	// Unpaid orders stay off the history page
	orders, err := f.orderService.GetUserOrders(f.user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 0)

	require.NoError(t, f.db.Model(order).Update("is_ordered", true).Error)

	orders, err = f.orderService.GetUserOrders(f.user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

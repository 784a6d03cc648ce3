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

type paymentTestFixture struct {
	paymentService PaymentService
	orderService   OrderService
	cartService    CartService
	user           *model.User
	productA       *model.Product
	productB       *model.Product
	db             *gorm.DB
}

func setupPaymentServiceTest(t *testing.T) *paymentTestFixture {
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
	paymentService := NewPaymentService(orderRepo, cartRepo, vendorRepo, nil, testDB)

	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		FirstName:    "Buyer",
		Username:     "buyer1",
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(user).Error)

	vendorA := newTestVendor(t, testDB, "pva@example.com", "pva", "Pay Shop A")
	vendorB := newTestVendor(t, testDB, "pvb@example.com", "pvb", "Pay Shop B")

	return &paymentTestFixture{
		paymentService: paymentService,
		orderService:   orderService,
		cartService:    cartService,
		user:           user,
		productA:       newTestProduct(t, testDB, vendorA, "Pay Product A", 500),
		productB:       newTestProduct(t, testDB, vendorB, "Pay Product B", 300),
		db:             testDB,
	}
}

// placeTestOrder fills the cart and places an unpaid order.
func (f *paymentTestFixture) placeTestOrder(t *testing.T) *model.Order {
	t.Helper()

	_, err := f.cartService.AddToCart(f.user.ID, f.productA.ID)
	require.NoError(t, err)
	_, err = f.cartService.AddToCart(f.user.ID, f.productA.ID)
	require.NoError(t, err)
	_, err = f.cartService.AddToCart(f.user.ID, f.productB.ID)
	require.NoError(t, err)

	order, err := f.orderService.PlaceOrder(f.user.ID, testOrderInput())
	require.NoError(t, err)
	return order
}

func testPaymentInput(orderNumber string) PaymentInput {
	return PaymentInput{
		OrderNumber:   orderNumber,
		TransactionID: "txn-12345",
		PaymentMethod: "PayPal",
		Status:        model.PaymentStatusCompleted,
	}
}

func TestPaymentService_ConfirmPayment_Success(t *testing.T) {
	f := setupPaymentServiceTest(t)
	order := f.placeTestOrder(t)

	confirmed, err := f.paymentService.ConfirmPayment(f.user.ID, testPaymentInput(order.OrderNumber))
	require.NoError(t, err)
	assert.True(t, confirmed.IsOrdered)
	require.NotNil(t, confirmed.PaymentID)

	var payment model.Payment
	require.NoError(t, f.db.First(&payment, *confirmed.PaymentID).Error)
	assert.Equal(t, "txn-12345", payment.TransactionID)
	assert.Equal(t, order.Total, payment.Amount)
}

func TestPaymentService_ConfirmPayment_SnapshotsCartLines(t *testing.T) {
	f := setupPaymentServiceTest(t)
	order := f.placeTestOrder(t)

	_, err := f.paymentService.ConfirmPayment(f.user.ID, testPaymentInput(order.OrderNumber))
	require.NoError(t, err)

	// One snapshot per cart line, priced at confirmation time
	var snapshots []model.OrderedProduct
	require.NoError(t, f.db.Where("order_id = ?", order.ID).Order("id ASC").Find(&snapshots).Error)
	require.Len(t, snapshots, 2)

	assert.Equal(t, f.productA.ID, snapshots[0].ProductID)
	assert.Equal(t, 2, snapshots[0].Quantity)
	assert.Equal(t, 500.0, snapshots[0].Price)
	assert.Equal(t, 1000.0, snapshots[0].Amount)

	assert.Equal(t, f.productB.ID, snapshots[1].ProductID)
	assert.Equal(t, 1, snapshots[1].Quantity)
	assert.Equal(t, 300.0, snapshots[1].Amount)
}

func TestPaymentService_ConfirmPayment_ClearsCart(t *testing.T) {
	f := setupPaymentServiceTest(t)
	order := f.placeTestOrder(t)

	_, err := f.paymentService.ConfirmPayment(f.user.ID, testPaymentInput(order.OrderNumber))
	require.NoError(t, err)

	var count int64
	f.db.Model(&model.CartItem{}).Where("user_id = ?", f.user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPaymentService_ConfirmPayment_ReplayRejected(t *testing.T) {
	f := setupPaymentServiceTest(t)
	order := f.placeTestOrder(t)

	_, err := f.paymentService.ConfirmPayment(f.user.ID, testPaymentInput(order.OrderNumber))
	require.NoError(t, err)

	// The gateway retries the callback
	_, err = f.paymentService.ConfirmPayment(f.user.ID, testPaymentInput(order.OrderNumber))
	assert.ErrorIs(t, err, ErrOrderAlreadyPaid)

	// No duplicate payments or snapshots
	var paymentCount, snapshotCount int64
	f.db.Model(&model.Payment{}).Where("user_id = ?", f.user.ID).Count(&paymentCount)
	f.db.Model(&model.OrderedProduct{}).Where("order_id = ?", order.ID).Count(&snapshotCount)
	assert.Equal(t, int64(1), paymentCount)
	assert.Equal(t, int64(2), snapshotCount)
}

func TestPaymentService_ConfirmPayment_UnknownOrder(t *testing.T) {
	f := setupPaymentServiceTest(t)

	_, err := f.paymentService.ConfirmPayment(f.user.ID, testPaymentInput("20250101000000999"))
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPaymentService_ConfirmPayment_WrongUser(t *testing.T) {
	f := setupPaymentServiceTest(t)
	order := f.placeTestOrder(t)

	other := &model.User{
		Email:        "intruder@example.com",
		PasswordHash: "hash",
		FirstName:    "Intruder",
		Username:     "intruder1",
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(other).Error)

	_, err := f.paymentService.ConfirmPayment(other.ID, testPaymentInput(order.OrderNumber))
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPaymentService_OrderComplete(t *testing.T) {
	f := setupPaymentServiceTest(t)
	order := f.placeTestOrder(t)

	_, err := f.paymentService.ConfirmPayment(f.user.ID, testPaymentInput(order.OrderNumber))
	require.NoError(t, err)

	receipt, err := f.paymentService.OrderComplete(order.OrderNumber, "txn-12345")
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, receipt.Order.OrderNumber)
	assert.Len(t, receipt.Items, 2)
	assert.Equal(t, receipt.Order.Total-receipt.Order.TotalTax, receipt.Subtotal)
}

func TestPaymentService_OrderComplete_TransactionMismatch(t *testing.T) {
	f := setupPaymentServiceTest(t)
	order := f.placeTestOrder(t)

	_, err := f.paymentService.ConfirmPayment(f.user.ID, testPaymentInput(order.OrderNumber))
	require.NoError(t, err)

	_, err = f.paymentService.OrderComplete(order.OrderNumber, "txn-wrong")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPaymentService_OrderComplete_UnpaidOrder(t *testing.T) {
	f := setupPaymentServiceTest(t)
	order := f.placeTestOrder(t)

	// Never confirmed
	_, err := f.paymentService.OrderComplete(order.OrderNumber, "txn-12345")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

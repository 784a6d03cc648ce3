package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/repository"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
)

// OrderInput carries the checkout billing form.
type OrderInput struct {
	FirstName     string
	LastName      string
	Phone         string
	Email         string
	Address       string
	Country       string
	State         string
	City          string
	PinCode       string
	PaymentMethod string
}

type OrderService interface {
	PlaceOrder(userID uint, input OrderInput) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetUserOrder(userID uint, orderNumber string) (*model.Order, []model.OrderedProduct, error)
	GetVendorOrders(vendorID uint) ([]model.Order, error)
	GetVendorOrder(vendorID uint, orderNumber string) (*model.Order, []model.OrderedProduct, error)
}

type orderService struct {
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	vendorRepo repository.VendorRepository
	cartSvc    CartService
	db         *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	vendorRepo repository.VendorRepository,
	cartSvc CartService,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		vendorRepo: vendorRepo,
		cartSvc:    cartSvc,
		db:         db,
	}
}

// PlaceOrder snapshots the cart into an unpaid order. The order number
// is derived from the generated primary key, so the row is inserted
// first and the number written in a second save inside the same
// transaction. The cart itself is untouched until payment confirmation.
func (s *orderService) PlaceOrder(userID uint, input OrderInput) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"user_id":        userID,
		"payment_method": input.PaymentMethod,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Cannot place order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	// Distinct vendors in the cart, in first-seen order.
	vendorIDs := make([]uint, 0, len(cartItems))
	seen := make(map[uint]bool, len(cartItems))
	for _, item := range cartItems {
		if !seen[item.Product.VendorID] {
			seen[item.Product.VendorID] = true
			vendorIDs = append(vendorIDs, item.Product.VendorID)
		}
	}

	// Per-vendor subtotals, folded over the cart in a single pass and
	// keyed strictly by the vendors collected above.
	totalData := make(model.VendorTotals, len(vendorIDs))
	for _, vendorID := range vendorIDs {
		var subtotal float64
		for _, item := range cartItems {
			if item.Product.VendorID == vendorID {
				subtotal += item.Product.Price * float64(item.Quantity)
			}
		}
		totalData[vendorID] = strconv.FormatFloat(round2(subtotal), 'f', 2, 64)
	}

	amounts, err := s.cartSvc.Amounts(userID)
	if err != nil {
		return nil, err
	}

	vendors, err := s.vendorRepo.FindByIDs(vendorIDs)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:        userID,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		Country:       input.Country,
		State:         input.State,
		City:          input.City,
		PinCode:       input.PinCode,
		Total:         amounts.GrandTotal,
		TotalData:     totalData,
		TotalTax:      amounts.Tax,
		PaymentMethod: input.PaymentMethod,
		IsOrdered:     false,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order placement, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	// The number needs the generated id, so it is assigned after the
	// first insert.
	order.OrderNumber = util.GenerateOrderNumber(order.ID)
	if err := tx.Model(order).Update("order_number", order.OrderNumber).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to assign order number", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	if err := tx.Model(order).Association("Vendors").Append(vendors); err != nil {
		tx.Rollback()
		logger.Error("Failed to associate vendors with order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order placement", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total,
		"vendor_count": len(vendorIDs),
	})

	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetUserOrder(userID uint, orderNumber string) (*model.Order, []model.OrderedProduct, error) {
	order, err := s.orderRepo.FindByUserAndOrderNumber(userID, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}

	items, err := s.orderRepo.FindOrderedProducts(order.ID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (s *orderService) GetVendorOrders(vendorID uint) ([]model.Order, error) {
	return s.orderRepo.FindByVendorID(vendorID)
}

// GetVendorOrder shows a vendor its slice of a shared order: only the
// line items for its own products, and the grand total replaced by its
// share from the per-vendor breakdown.
func (s *orderService) GetVendorOrder(vendorID uint, orderNumber string) (*model.Order, []model.OrderedProduct, error) {
	orders, err := s.orderRepo.FindByVendorID(vendorID)
	if err != nil {
		return nil, nil, err
	}

	var order *model.Order
	for i := range orders {
		if orders[i].OrderNumber == orderNumber {
			order = &orders[i]
			break
		}
	}
	if order == nil {
		logger.Warn("Vendor order lookup failed", map[string]interface{}{
			"vendor_id":    vendorID,
			"order_number": orderNumber,
		})
		return nil, nil, ErrOrderNotFound
	}

	items, err := s.orderRepo.FindOrderedProductsByVendor(order.ID, vendorID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

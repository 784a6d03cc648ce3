package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/repository"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/mailer"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderAlreadyPaid = errors.New("order is already paid")
)

// PaymentInput is the gateway callback payload for one order.
type PaymentInput struct {
	OrderNumber   string
	TransactionID string
	PaymentMethod string
	Status        model.PaymentStatus
}

// OrderReceipt is the confirmation page data: the paid order, its line
// item snapshots and the derived subtotal.
type OrderReceipt struct {
	Order    *model.Order           `json:"order"`
	Items    []model.OrderedProduct `json:"items"`
	Subtotal float64                `json:"subtotal"`
}

type PaymentService interface {
	ConfirmPayment(userID uint, input PaymentInput) (*model.Order, error)
	OrderComplete(orderNumber, transactionID string) (*OrderReceipt, error)
}

type paymentService struct {
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	vendorRepo repository.VendorRepository
	mailer     mailer.Mailer
	db         *gorm.DB
}

func NewPaymentService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	vendorRepo repository.VendorRepository,
	m mailer.Mailer,
	db *gorm.DB,
) PaymentService {
	return &paymentService{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		vendorRepo: vendorRepo,
		mailer:     m,
		db:         db,
	}
}

// ConfirmPayment finalizes a paid order in one transaction: it records
// the payment, flips the order to paid, materializes one OrderedProduct
// snapshot per cart line at the current product price, and clears the
// cart. The order row is locked first, so a replayed callback sees
// IsOrdered already set and is rejected without touching anything.
func (s *paymentService) ConfirmPayment(userID uint, input PaymentInput) (*model.Order, error) {
	logger.Info("Confirming payment", map[string]interface{}{
		"user_id":        userID,
		"order_number":   input.OrderNumber,
		"transaction_id": input.TransactionID,
		"payment_method": input.PaymentMethod,
	})

	var order model.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND order_number = ?", userID, input.OrderNumber).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.IsOrdered {
			return ErrOrderAlreadyPaid
		}

		payment := &model.Payment{
			UserID:        userID,
			TransactionID: input.TransactionID,
			PaymentMethod: input.PaymentMethod,
			Amount:        order.Total,
			Status:        input.Status,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		order.PaymentID = &payment.ID
		order.Payment = payment
		order.IsOrdered = true
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"payment_id": payment.ID,
			"is_ordered": true,
		}).Error; err != nil {
			return err
		}

		var cartItems []model.CartItem
		if err := tx.Preload("Product").
			Where("user_id = ?", userID).
			Order("created_at ASC").
			Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		for _, item := range cartItems {
			snapshot := model.OrderedProduct{
				OrderID:   order.ID,
				PaymentID: payment.ID,
				UserID:    userID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
				Amount:    round2(item.Product.Price * float64(item.Quantity)),
			}
			if err := tx.Create(&snapshot).Error; err != nil {
				return err
			}
		}

		return s.cartRepo.DeleteByUserID(tx, userID)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			logger.Warn("Payment confirmation failed: order not found", map[string]interface{}{
				"user_id":      userID,
				"order_number": input.OrderNumber,
			})
		case errors.Is(err, ErrOrderAlreadyPaid):
			logger.Warn("Payment confirmation rejected: order already paid", map[string]interface{}{
				"user_id":      userID,
				"order_number": input.OrderNumber,
			})
		case errors.Is(err, ErrEmptyCart):
			logger.Warn("Payment confirmation failed: cart already empty", map[string]interface{}{
				"user_id":      userID,
				"order_number": input.OrderNumber,
			})
		default:
			logger.Error("Failed to confirm payment", err, map[string]interface{}{
				"user_id":      userID,
				"order_number": input.OrderNumber,
			})
		}
		return nil, err
	}

	logger.Info("Payment confirmed", map[string]interface{}{
		"user_id":      userID,
		"order_number": order.OrderNumber,
		"total":        order.Total,
	})

	if s.mailer != nil {
		go s.sendOrderMails(&order)
	}

	return &order, nil
}

// OrderComplete looks up the receipt for a paid order. Number and
// transaction id must both match; anything else reports not-found.
func (s *paymentService) OrderComplete(orderNumber, transactionID string) (*OrderReceipt, error) {
	order, err := s.orderRepo.FindCompleted(orderNumber, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order completion lookup failed", map[string]interface{}{
				"order_number":   orderNumber,
				"transaction_id": transactionID,
			})
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	items, err := s.orderRepo.FindOrderedProducts(order.ID)
	if err != nil {
		return nil, err
	}

	return &OrderReceipt{
		Order:    order,
		Items:    items,
		Subtotal: round2(order.Total - order.TotalTax),
	}, nil
}

// sendOrderMails notifies the customer and every vendor with a share in
// the order. Runs after commit; failures are logged and dropped.
func (s *paymentService) sendOrderMails(order *model.Order) {
	customerBody := fmt.Sprintf(
		"Hello %s,\r\n\r\nThank you for your order!\r\n\r\nOrder number: %s\r\nTotal: %.2f (tax %.2f)\r\n\r\nWe will notify you when your items ship.\r\n",
		order.FirstName, order.OrderNumber, order.Total, order.TotalTax,
	)
	if err := s.mailer.Send(mailer.Message{
		To:      []string{order.Email},
		Subject: "Thank you for ordering with us",
		Body:    customerBody,
	}); err != nil {
		logger.Error("Failed to send order confirmation mail to customer", err, map[string]interface{}{
			"order_number": order.OrderNumber,
		})
	}

	vendorIDs := make([]uint, 0, len(order.TotalData))
	for vendorID := range order.TotalData {
		vendorIDs = append(vendorIDs, vendorID)
	}
	if len(vendorIDs) == 0 {
		return
	}

	vendors, err := s.vendorRepo.FindByIDs(vendorIDs)
	if err != nil {
		logger.Error("Failed to load vendors for order mail", err, map[string]interface{}{
			"order_number": order.OrderNumber,
		})
		return
	}

	// Dedupe recipient addresses; a user owning several shops gets one
	// mail per order, not one per shop.
	seen := make(map[string]bool, len(vendors))
	for _, vendor := range vendors {
		email := strings.ToLower(vendor.User.Email)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true

		body := fmt.Sprintf(
			"Hello %s,\r\n\r\nYou have received a new order.\r\n\r\nOrder number: %s\r\nYour share of the order: %s\r\n",
			vendor.User.FirstName, order.OrderNumber, order.TotalData[vendor.ID],
		)
		if err := s.mailer.Send(mailer.Message{
			To:      []string{vendor.User.Email},
			Subject: "You have received a new order",
			Body:    body,
		}); err != nil {
			logger.Error("Failed to send order mail to vendor", err, map[string]interface{}{
				"order_number": order.OrderNumber,
				"vendor_id":    vendor.ID,
			})
		}
	}
}

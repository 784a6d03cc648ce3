package service

import (
	"errors"
	"math"
	"strings"

	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/repository"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartAmounts is the running money summary of a user's cart.
type CartAmounts struct {
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grand_total"`
}

// CartSummary is returned by every cart mutation so the client can
// refresh its badge and totals without a second round trip. Counter is
// the sum of all quantities in the cart; Qty is the quantity of the
// line the call touched (0 once the line is removed).
type CartSummary struct {
	Counter int         `json:"cart_counter"`
	Qty     int         `json:"qty"`
	Amounts CartAmounts `json:"cart_amount"`
}

type CartService interface {
	AddToCart(userID, productID uint) (*CartSummary, error)
	DecreaseCart(userID, productID uint) (*CartSummary, error)
	DeleteCartItem(userID, cartItemID uint) (*CartSummary, error)
	GetUserCart(userID uint) ([]model.CartItem, *CartSummary, error)
	CartCounter(userID uint) (int, error)
	Amounts(userID uint) (CartAmounts, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	taxRate     float64 // percentage applied to the subtotal
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
	taxRate float64,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		db:          db,
		taxRate:     taxRate,
	}
}

// AddToCart increments the (user, product) line or creates it at
// quantity 1. The existing row is locked before the increment and a
// create that loses the race against a concurrent insert retries as an
// increment, so two concurrent adds always net quantity 2, never a
// duplicate row.
func (s *cartService) AddToCart(userID, productID uint) (*CartSummary, error) {
	logger.Info("Adding product to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Add to cart failed: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsAvailable {
		logger.Warn("Add to cart failed: product unavailable", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, ErrProductNotFound
	}

	var qty int
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var item model.CartItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item).Error
		switch {
		case err == nil:
			item.Quantity++
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
			qty = item.Quantity
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = model.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
			if err := tx.Create(&item).Error; err != nil {
				if isUniqueViolation(err) {
					// Lost the race: another request inserted the row
					// between our lookup and create. Fold into it.
					return tx.Model(&model.CartItem{}).
						Where("user_id = ? AND product_id = ?", userID, productID).
						UpdateColumn("quantity", gorm.Expr("quantity + 1")).
						Error
				}
				return err
			}
			qty = item.Quantity
			return nil
		default:
			return err
		}
	})
	if err != nil {
		logger.Error("Failed to add product to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	if qty == 0 {
		// Retried path: re-read the folded quantity.
		item, err := s.cartRepo.FindByUserAndProduct(userID, productID)
		if err != nil {
			return nil, err
		}
		qty = item.Quantity
	}

	logger.Info("Product added to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   qty,
	})

	return s.summary(userID, qty)
}

// DecreaseCart lowers the (user, product) line by one. At quantity 1
// the row is deleted; quantity never persists at zero.
func (s *cartService) DecreaseCart(userID, productID uint) (*CartSummary, error) {
	logger.Info("Decreasing cart quantity", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var qty int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.CartItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}

		if item.Quantity > 1 {
			item.Quantity--
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
			qty = item.Quantity
			return nil
		}

		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		qty = 0
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCartItemNotFound) {
			logger.Warn("Decrease failed: item not in cart", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to decrease cart quantity", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	return s.summary(userID, qty)
}

// DeleteCartItem removes a whole cart line by its id. A line belonging
// to another user reports not-found.
func (s *cartService) DeleteCartItem(userID, cartItemID uint) (*CartSummary, error) {
	logger.Info("Deleting cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		logger.Warn("Cart item ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return nil, ErrCartItemNotFound
	}

	if err := s.cartRepo.Delete(item); err != nil {
		return nil, err
	}

	return s.summary(userID, 0)
}

func (s *cartService) GetUserCart(userID uint) ([]model.CartItem, *CartSummary, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, nil, err
	}

	summary, err := s.summary(userID, 0)
	if err != nil {
		return nil, nil, err
	}
	return items, summary, nil
}

func (s *cartService) CartCounter(userID uint) (int, error) {
	return s.cartRepo.SumQuantities(userID)
}

// Amounts folds the cart into subtotal, tax and grand total. Tax is a
// flat percentage of the subtotal; all three values are rounded to two
// decimal places.
func (s *cartService) Amounts(userID uint) (CartAmounts, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return CartAmounts{}, err
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Product.Price * float64(item.Quantity)
	}

	tax := subtotal * s.taxRate / 100
	return CartAmounts{
		Subtotal:   round2(subtotal),
		Tax:        round2(tax),
		GrandTotal: round2(subtotal + tax),
	}, nil
}

func (s *cartService) summary(userID uint, qty int) (*CartSummary, error) {
	counter, err := s.cartRepo.SumQuantities(userID)
	if err != nil {
		return nil, err
	}

	amounts, err := s.Amounts(userID)
	if err != nil {
		return nil, err
	}

	return &CartSummary{
		Counter: counter,
		Qty:     qty,
		Amounts: amounts,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// isUniqueViolation matches both the PostgreSQL and SQLite wording for
// a unique index violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") // sqlite: "UNIQUE constraint failed"
}

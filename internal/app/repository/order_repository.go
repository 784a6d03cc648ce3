package repository

import (
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	FindByUserAndOrderNumber(userID uint, orderNumber string) (*model.Order, error)
	FindCompleted(orderNumber, transactionID string) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindByVendorID(vendorID uint) ([]model.Order, error)
	FindOrderedProducts(orderID uint) ([]model.OrderedProduct, error)
	FindOrderedProductsByVendor(orderID, vendorID uint) ([]model.OrderedProduct, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByUserAndOrderNumber(userID uint, orderNumber string) (*model.Order, error) {
	var order model.Order
	err := r.db.Where("user_id = ? AND order_number = ?", userID, orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindCompleted looks up a paid order by its number and the transaction ID
// of its payment. Both must match for the lookup to succeed.
func (r *orderRepository) FindCompleted(orderNumber, transactionID string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Payment").
		Joins("JOIN payments ON payments.id = orders.payment_id AND payments.transaction_id = ?", transactionID).
		Where("orders.order_number = ? AND orders.is_ordered = ?", orderNumber, true).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("user_id = ? AND is_ordered = ?", userID, true).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByVendorID(vendorID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Joins("JOIN order_vendors ON order_vendors.order_id = orders.id").
		Where("order_vendors.vendor_id = ? AND orders.is_ordered = ?", vendorID, true).
		Order("orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by vendor in database", err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindOrderedProducts(orderID uint) ([]model.OrderedProduct, error) {
	var items []model.OrderedProduct
	err := r.db.Preload("Product").Where("order_id = ?", orderID).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) FindOrderedProductsByVendor(orderID, vendorID uint) ([]model.OrderedProduct, error) {
	var items []model.OrderedProduct
	err := r.db.Preload("Product").
		Joins("JOIN products ON products.id = ordered_products.product_id").
		Where("ordered_products.order_id = ? AND products.vendor_id = ?", orderID, vendorID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string // status reported by the payment gateway

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// VendorTotals maps a vendor id to that vendor's share of an order
// total, kept as a string snapshot of the amount at checkout time.
// Stored as a JSON column.
type VendorTotals map[uint]string

// Value implements database/sql/driver.Valuer
func (t VendorTotals) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan implements database/sql.Scanner
func (t *VendorTotals) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("failed to scan VendorTotals")
		}
	}

	return json.Unmarshal(bytes, t)
}

// Order is a checkout snapshot. It is created unpaid (IsOrdered=false)
// and flips to paid exactly once during payment confirmation. The order
// number is derived from the generated primary key after the first
// insert, so it is assigned in a second save.
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	OrderNumber   string         `gorm:"type:varchar(30);uniqueIndex" json:"order_number"`
	FirstName     string         `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName      string         `gorm:"type:varchar(50)" json:"last_name"`
	Phone         string         `gorm:"type:varchar(15);not null" json:"phone"`
	Email         string         `gorm:"type:varchar(50);not null" json:"email"`
	Address       string         `gorm:"type:varchar(200);not null" json:"address"`
	Country       string         `gorm:"type:varchar(20)" json:"country"`
	State         string         `gorm:"type:varchar(20)" json:"state"`
	City          string         `gorm:"type:varchar(20)" json:"city"`
	PinCode       string         `gorm:"type:varchar(10)" json:"pin_code"`
	Total         float64        `gorm:"not null" json:"total"`
	TotalData     VendorTotals   `gorm:"type:text" json:"total_data"`
	TotalTax      float64        `json:"total_tax"`
	PaymentMethod string         `gorm:"type:varchar(25)" json:"payment_method"`
	PaymentID     *uint          `gorm:"index" json:"payment_id,omitempty"`
	IsOrdered     bool           `gorm:"default:false;index" json:"is_ordered"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User            User             `gorm:"foreignKey:UserID" json:"-"`
	Payment         *Payment         `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
	Vendors         []Vendor         `gorm:"many2many:order_vendors;" json:"vendors,omitempty"`
	OrderedProducts []OrderedProduct `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"ordered_products,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// Payment records a completed gateway transaction. Immutable after
// creation; Amount always equals the linked order's Total.
type Payment struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	TransactionID string         `gorm:"type:varchar(100);not null;index" json:"transaction_id"`
	PaymentMethod string         `gorm:"type:varchar(25);not null" json:"payment_method"`
	Amount        float64        `gorm:"not null" json:"amount"`
	Status        PaymentStatus  `gorm:"type:varchar(20)" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

// OrderedProduct is the immutable per-line snapshot materialized when a
// payment succeeds. Price is copied from the live product at
// confirmation time and never re-derived.
type OrderedProduct struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	PaymentID uint           `gorm:"not null;index" json:"payment_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Price     float64        `gorm:"not null" json:"price"`
	Amount    float64        `gorm:"not null" json:"amount"` // price * quantity
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Payment Payment `gorm:"foreignKey:PaymentID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderedProduct) TableName() string {
	return "ordered_products"
}

package util

import (
	"fmt"
	"time"
)

// GenerateOrderNumber derives a human-readable order number from an
// order's primary key. The key suffix guarantees uniqueness; the
// timestamp prefix keeps numbers sortable by creation time. Only call
// this after the row has been inserted and holds its generated id.
func GenerateOrderNumber(orderID uint) string {
	return fmt.Sprintf("%s%d", time.Now().Format("20060102150405"), orderID)
}

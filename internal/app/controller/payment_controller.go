package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/service"
	"github.com/toshniwal-akshay/ecommerce-project/internal/middleware"
)

type PaymentController struct {
	paymentService service.PaymentService
}

func NewPaymentController(paymentService service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

type ConfirmPaymentRequest struct {
	OrderNumber   string `json:"order_number" binding:"required"`
	TransactionID string `json:"transaction_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	Status        string `json:"status"`
}

// ConfirmPayment records a gateway success callback against an unpaid
// order. Same XHR gate as the cart endpoints; the gateway widget posts
// from the checkout page.
// POST /api/v1/payments/confirm
func (ctrl *PaymentController) ConfirmPayment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusOK, gin.H{
			"status":  statusLoginRequired,
			"message": "Please login to continue",
		})
		return
	}

	if !isAjax(c) {
		c.JSON(http.StatusOK, gin.H{
			"status":  statusFailed,
			"message": "Invalid request!",
		})
		return
	}

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid payment confirmation request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusOK, gin.H{
			"status":  statusFailed,
			"message": "Invalid request!",
		})
		return
	}

	status := model.PaymentStatus(req.Status)
	if status == "" {
		status = model.PaymentStatusCompleted
	}

	order, err := ctrl.paymentService.ConfirmPayment(userID, service.PaymentInput{
		OrderNumber:   req.OrderNumber,
		TransactionID: req.TransactionID,
		PaymentMethod: req.PaymentMethod,
		Status:        status,
	})
	if err != nil {
		switch err {
		case service.ErrOrderNotFound:
			c.JSON(http.StatusOK, gin.H{
				"status":  statusFailed,
				"message": "Order could not be found",
			})
		case service.ErrOrderAlreadyPaid:
			c.JSON(http.StatusOK, gin.H{
				"status":  statusFailed,
				"message": "This order has already been paid",
			})
		case service.ErrEmptyCart:
			c.JSON(http.StatusOK, gin.H{
				"status":  statusFailed,
				"message": "Your cart is empty",
			})
		default:
			log.Error("Payment confirmation failed", err, map[string]interface{}{
				"user_id":      userID,
				"order_number": req.OrderNumber,
			})
			c.JSON(http.StatusOK, gin.H{
				"status":  statusFailed,
				"message": "Something went wrong. Please try again later",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         statusSuccess,
		"order_number":   order.OrderNumber,
		"transaction_id": req.TransactionID,
	})
}

// OrderComplete renders the receipt for a paid order. Number and
// transaction id come from the redirect query; any mismatch sends the
// visitor back to the marketplace instead of leaking whether the order
// exists.
// GET /api/v1/orders/complete?order_no=&trans_id=
func (ctrl *PaymentController) OrderComplete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderNumber := c.Query("order_no")
	transactionID := c.Query("trans_id")
	if orderNumber == "" || transactionID == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	receipt, err := ctrl.paymentService.OrderComplete(orderNumber, transactionID)
	if err != nil {
		if err == service.ErrOrderNotFound {
			c.Redirect(http.StatusFound, "/")
			return
		}
		log.Error("Failed to load order receipt", err, map[string]interface{}{
			"order_number": orderNumber,
		})
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":    receipt.Order,
		"items":    receipt.Items,
		"subtotal": receipt.Subtotal,
	})
}

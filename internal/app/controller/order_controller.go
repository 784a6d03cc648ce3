package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/service"
	"github.com/toshniwal-akshay/ecommerce-project/internal/errors"
	"github.com/toshniwal-akshay/ecommerce-project/internal/middleware"
)

type OrderController struct {
	orderService  service.OrderService
	cartService   service.CartService
	authService   service.AuthService
	vendorService service.VendorService
}

func NewOrderController(
	orderService service.OrderService,
	cartService service.CartService,
	authService service.AuthService,
	vendorService service.VendorService,
) *OrderController {
	return &OrderController{
		orderService:  orderService,
		cartService:   cartService,
		authService:   authService,
		vendorService: vendorService,
	}
}

type PlaceOrderRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Address       string `json:"address" binding:"required"`
	Country       string `json:"country"`
	State         string `json:"state"`
	City          string `json:"city"`
	PinCode       string `json:"pin_code"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// Checkout returns the checkout page data: cart lines, amounts and the
// billing form prefilled from the user's profile. An empty cart
// redirects back to the marketplace.
// GET /api/v1/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	items, summary, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to load cart for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}
	if len(items) == 0 {
		log.Warn("Checkout with empty cart", map[string]interface{}{
			"user_id": userID,
		})
		c.Redirect(http.StatusFound, "/")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}

	form := gin.H{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"phone":      user.Phone,
		"email":      user.Email,
	}
	if user.Profile != nil {
		form["address"] = user.Profile.Address
		form["country"] = user.Profile.Country
		form["state"] = user.Profile.State
		form["city"] = user.Profile.City
		form["pin_code"] = user.Profile.PinCode
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items":  items,
		"cart_amount": summary.Amounts,
		"form":        form,
	})
}

// PlaceOrder snapshots the cart into an unpaid order
// POST /api/v1/checkout/place-order
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid place order request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid order data")
		return
	}

	order, err := ctrl.orderService.PlaceOrder(userID, service.OrderInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Country:       req.Country,
		State:         req.State,
		City:          req.City,
		PinCode:       req.PinCode,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		if err == service.ErrEmptyCart {
			errors.BadRequest(c, errors.CartEmpty, "Your cart is empty")
			return
		}
		log.Error("Failed to place order", err, map[string]interface{}{
			"user_id": userID,
		})
		info := errors.ParseError(err, "checkout")
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":   order,
		"message": "Order placed. Proceed to payment",
	})
}

// GetMyOrders lists the caller's paid orders
// GET /api/v1/orders
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":      orders,
		"order_count": len(orders),
	})
}

// GetMyOrderDetail shows one of the caller's paid orders with its line
// item snapshots
// GET /api/v1/orders/:order_number
func (ctrl *OrderController) GetMyOrderDetail(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	orderNumber := c.Param("order_number")
	order, items, err := ctrl.orderService.GetUserOrder(userID, orderNumber)
	if err != nil {
		if err == service.ErrOrderNotFound {
			errors.NotFound(c, errors.OrderNotFound, "Order could not be found")
			return
		}
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": items,
	})
}

// GetVendorOrders lists the orders touching the calling vendor's shop
// GET /api/v1/vendor/orders
func (ctrl *OrderController) GetVendorOrders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	vendor, err := ctrl.vendorService.GetByUserID(userID)
	if err != nil {
		if err == service.ErrVendorNotFound {
			errors.NotFound(c, errors.VendorNotFound, "Vendor could not be found")
			return
		}
		errors.InternalError(c, "")
		return
	}

	orders, err := ctrl.orderService.GetVendorOrders(vendor.ID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}

	// Replace grand totals with the vendor's own share, and fold the
	// shares into the dashboard revenue figures.
	type vendorOrder struct {
		OrderNumber string `json:"order_number"`
		CreatedAt   string `json:"created_at"`
		Total       string `json:"total"`
	}
	now := time.Now()
	var totalRevenue, currentMonthRevenue float64
	result := make([]vendorOrder, 0, len(orders))
	for _, o := range orders {
		share := o.TotalData[vendor.ID]
		if amount, err := strconv.ParseFloat(share, 64); err == nil {
			totalRevenue += amount
			if o.CreatedAt.Year() == now.Year() && o.CreatedAt.Month() == now.Month() {
				currentMonthRevenue += amount
			}
		}
		result = append(result, vendorOrder{
			OrderNumber: o.OrderNumber,
			CreatedAt:   o.CreatedAt.Format("2006-01-02 15:04:05"),
			Total:       share,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":                result,
		"order_count":           len(result),
		"total_revenue":         totalRevenue,
		"current_month_revenue": currentMonthRevenue,
	})
}

// GetVendorOrderDetail shows the vendor's slice of one order
// GET /api/v1/vendor/orders/:order_number
func (ctrl *OrderController) GetVendorOrderDetail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	vendor, err := ctrl.vendorService.GetByUserID(userID)
	if err != nil {
		if err == service.ErrVendorNotFound {
			errors.NotFound(c, errors.VendorNotFound, "Vendor could not be found")
			return
		}
		errors.InternalError(c, "")
		return
	}

	orderNumber := c.Param("order_number")
	order, items, err := ctrl.orderService.GetVendorOrder(vendor.ID, orderNumber)
	if err != nil {
		if err == service.ErrOrderNotFound {
			errors.NotFound(c, errors.OrderNotFound, "Order could not be found")
			return
		}
		log.Error("Failed to fetch vendor order", err, map[string]interface{}{
			"vendor_id":    vendor.ID,
			"order_number": orderNumber,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":        order,
		"items":        items,
		"vendor_total": order.TotalData[vendor.ID],
	})
}

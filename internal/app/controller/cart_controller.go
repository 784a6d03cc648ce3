package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/service"
	"github.com/toshniwal-akshay/ecommerce-project/internal/errors"
	"github.com/toshniwal-akshay/ecommerce-project/internal/middleware"
)

// Cart mutations are GET endpoints called from the storefront via
// XMLHttpRequest. They answer 200 with a status field rather than HTTP
// error codes, because the frontend switches on status to decide
// between updating the badge, showing a toast, and redirecting to
// login.
const (
	statusSuccess       = "Success"
	statusFailed        = "Failed"
	statusLoginRequired = "login_required"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// isAjax reports whether the request came from the storefront's XHR
// client. Anything else gets a flat failure without touching the cart.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// GetCart returns the user's cart page data
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	items, summary, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items":   items,
		"cart_counter": summary.Counter,
		"cart_amount":  summary.Amounts,
	})
}

// AddToCart adds one unit of a product to the cart
// GET /api/v1/cart/add/:product_id
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := ctrl.ajaxUser(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  statusFailed,
			"message": "This product does not exist!",
		})
		return
	}

	summary, err := ctrl.cartService.AddToCart(userID, uint(productID))
	if err != nil {
		if err == service.ErrProductNotFound {
			c.JSON(http.StatusOK, gin.H{
				"status":  statusFailed,
				"message": "This product does not exist!",
			})
			return
		}
		log.Error("Failed to add to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		c.JSON(http.StatusOK, gin.H{
			"status":  statusFailed,
			"message": "Something went wrong. Please try again later",
		})
		return
	}

	message := "Increased the cart quantity"
	if summary.Qty == 1 {
		message = "Added the product to the cart"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       statusSuccess,
		"message":      message,
		"cart_counter": summary.Counter,
		"qty":          summary.Qty,
		"cart_amount":  summary.Amounts,
	})
}

// DecreaseCart removes one unit of a product from the cart
// GET /api/v1/cart/decrease/:product_id
func (ctrl *CartController) DecreaseCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := ctrl.ajaxUser(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  statusFailed,
			"message": "This product does not exist!",
		})
		return
	}

	summary, err := ctrl.cartService.DecreaseCart(userID, uint(productID))
	if err != nil {
		switch err {
		case service.ErrProductNotFound:
			c.JSON(http.StatusOK, gin.H{
				"status":  statusFailed,
				"message": "This product does not exist!",
			})
		case service.ErrCartItemNotFound:
			c.JSON(http.StatusOK, gin.H{
				"status":  statusFailed,
				"message": "You do not have this item in your cart!",
			})
		default:
			log.Error("Failed to decrease cart", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			c.JSON(http.StatusOK, gin.H{
				"status":  statusFailed,
				"message": "Something went wrong. Please try again later",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       statusSuccess,
		"cart_counter": summary.Counter,
		"qty":          summary.Qty,
		"cart_amount":  summary.Amounts,
	})
}

// DeleteCartItem removes a whole cart line
// GET /api/v1/cart/delete/:cart_id
func (ctrl *CartController) DeleteCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := ctrl.ajaxUser(c)
	if !ok {
		return
	}

	cartID, err := strconv.ParseUint(c.Param("cart_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  statusFailed,
			"message": "Cart item does not exist!",
		})
		return
	}

	summary, err := ctrl.cartService.DeleteCartItem(userID, uint(cartID))
	if err != nil {
		if err == service.ErrCartItemNotFound {
			c.JSON(http.StatusOK, gin.H{
				"status":  statusFailed,
				"message": "Cart item does not exist!",
			})
			return
		}
		log.Error("Failed to delete cart item", err, map[string]interface{}{
			"user_id": userID,
			"cart_id": cartID,
		})
		c.JSON(http.StatusOK, gin.H{
			"status":  statusFailed,
			"message": "Something went wrong. Please try again later",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       statusSuccess,
		"message":      "Cart item has been deleted!",
		"cart_counter": summary.Counter,
		"cart_amount":  summary.Amounts,
	})
}

// ajaxUser enforces the login gate and the XHR gate, in that order.
// Writes the failure body itself when either fails.
func (ctrl *CartController) ajaxUser(c *gin.Context) (uint, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusOK, gin.H{
			"status":  statusLoginRequired,
			"message": "Please login to continue",
		})
		return 0, false
	}

	if !isAjax(c) {
		c.JSON(http.StatusOK, gin.H{
			"status":  statusFailed,
			"message": "Invalid request!",
		})
		return 0, false
	}

	return userID, true
}

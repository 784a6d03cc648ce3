package router

import (
	"github.com/gin-gonic/gin"
	"github.com/toshniwal-akshay/ecommerce-project/config"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/controller"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/middleware"
)

type Router struct {
	authController    *controller.AuthController
	vendorController  *controller.VendorController
	catalogController *controller.CatalogController
	cartController    *controller.CartController
	orderController   *controller.OrderController
	paymentController *controller.PaymentController
	uploadController  *controller.UploadController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	vendorController *controller.VendorController,
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	paymentController *controller.PaymentController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		vendorController:  vendorController,
		catalogController: catalogController,
		cartController:    cartController,
		orderController:   orderController,
		paymentController: paymentController,
		uploadController:  uploadController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Marketplace API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/profile", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		// Public storefront
		marketplace := v1.Group("/marketplace")
		{
			marketplace.GET("", r.vendorController.ListVendors)
			marketplace.GET("/search", r.catalogController.SearchProducts)
			marketplace.GET("/:vendor_slug", r.vendorController.GetVendorDetail)
		}

		// Cart mutations answer with a status field instead of HTTP
		// errors, so they sit behind the optional authenticator and
		// handle the guest case themselves.
		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.OptionalAuthenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.GET("/add/:product_id", r.cartController.AddToCart)
			cart.GET("/decrease/:product_id", r.cartController.DecreaseCart)
			cart.GET("/delete/:cart_id", r.cartController.DeleteCartItem)
		}

		checkout := v1.Group("/checkout")
		checkout.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(model.RoleCustomer),
		)
		{
			checkout.GET("", r.orderController.Checkout)
			checkout.POST("/place-order", r.orderController.PlaceOrder)
		}

		payments := v1.Group("/payments")
		payments.Use(r.authMiddleware.OptionalAuthenticate())
		{
			payments.POST("/confirm", r.paymentController.ConfirmPayment)
		}

		orders := v1.Group("/orders")
		{
			// Receipt page is reachable from the gateway redirect
			// without a session.
			orders.GET("/complete", r.paymentController.OrderComplete)

			orders.GET("", r.authMiddleware.Authenticate(), r.orderController.GetMyOrders)
			orders.GET("/:order_number", r.authMiddleware.Authenticate(), r.orderController.GetMyOrderDetail)
		}

		vendor := v1.Group("/vendor")
		vendor.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(model.RoleVendor),
		)
		{
			vendor.GET("/shop", r.vendorController.GetMyShop)
			vendor.PUT("/shop", r.vendorController.UpdateShop)

			vendor.GET("/categories", r.catalogController.ListCategories)
			vendor.POST("/categories", r.catalogController.CreateCategory)
			vendor.PUT("/categories/:id", r.catalogController.UpdateCategory)
			vendor.DELETE("/categories/:id", r.catalogController.DeleteCategory)

			vendor.GET("/products", r.catalogController.ListProducts)
			vendor.POST("/products", r.catalogController.CreateProduct)
			vendor.PUT("/products/:id", r.catalogController.UpdateProduct)
			vendor.DELETE("/products/:id", r.catalogController.DeleteProduct)

			vendor.GET("/orders", r.orderController.GetVendorOrders)
			vendor.GET("/orders/:order_number", r.orderController.GetVendorOrderDetail)
		}

		admin := v1.Group("/admin")
		admin.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(model.RoleAdmin),
		)
		{
			admin.PATCH("/vendors/:id/approval", r.vendorController.ApproveVendor)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.PresignUpload)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

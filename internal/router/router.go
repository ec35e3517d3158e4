package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/config"
	"github.com/lacreme/bakery-backend/internal/app/controller"
	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/middleware"
)

// Controllers 라우터에 연결되는 컨트롤러 묶음
type Controllers struct {
	Cart         *controller.CartController
	Order        *controller.OrderController
	Coupon       *controller.CouponController
	Review       *controller.ReviewController
	Notification *controller.NotificationController
	Bakery       *controller.BakeryController
	Product      *controller.ProductController
	Category     *controller.CategoryController
	Address      *controller.AddressController
	User         *controller.UserController
	Upload       *controller.UploadController // S3 미설정 시 nil
	WebSocket    *controller.WebSocketController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

func NewRouter(controllers Controllers, authMiddleware *middleware.AuthMiddleware, cfg *config.Config) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		config:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "La Creme API is running",
		})
	})

	ctrl := r.controllers
	auth := r.authMiddleware.Authenticate()
	customer := r.authMiddleware.RequireRole(model.RoleCustomer)
	baker := r.authMiddleware.RequireRole(model.RoleBaker)
	admin := r.authMiddleware.RequireRole(model.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		// :id 자리에 slug 또는 매장 ID
		bakeries := v1.Group("/bakeries")
		{
			bakeries.GET("/:id", ctrl.Bakery.GetBakery)
			bakeries.GET("/:id/products", ctrl.Product.ListBakeryProducts)
			bakeries.GET("/:id/categories", ctrl.Category.ListBakeryCategories)
			bakeries.GET("/:id/reviews", ctrl.Review.GetBakeryReviews)
		}

		v1.GET("/products/:id", ctrl.Product.GetProductByID)

		cart := v1.Group("/cart")
		cart.Use(auth, customer)
		{
			cart.GET("", ctrl.Cart.GetCart)
			cart.POST("", ctrl.Cart.AddToCart)
			cart.PUT("/:id", ctrl.Cart.UpdateCartItem)
			cart.DELETE("/:id", ctrl.Cart.RemoveFromCart)
			cart.DELETE("", ctrl.Cart.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(auth)
		{
			orders.POST("", customer, ctrl.Order.CreateOrder)
			orders.GET("", customer, ctrl.Order.GetOrders)
			orders.GET("/:number", ctrl.Order.GetOrder)
			orders.GET("/:number/history", ctrl.Order.GetOrderHistory)
			orders.POST("/:number/cancel", customer, ctrl.Order.CancelOrder)
			orders.POST("/:number/reorder", customer, ctrl.Order.Reorder)
		}

		v1.POST("/coupons/validate", auth, ctrl.Coupon.ValidateCoupon)

		addresses := v1.Group("/addresses")
		addresses.Use(auth, customer)
		{
			addresses.GET("", ctrl.Address.GetAddresses)
			addresses.POST("", ctrl.Address.CreateAddress)
			addresses.PUT("/:id", ctrl.Address.UpdateAddress)
			addresses.DELETE("/:id", ctrl.Address.DeleteAddress)
			addresses.PUT("/:id/default", ctrl.Address.SetDefaultAddress)
		}

		reviews := v1.Group("/reviews")
		reviews.Use(auth)
		{
			reviews.POST("", customer, ctrl.Review.CreateReview)
			reviews.DELETE("/:id", ctrl.Review.DeleteReview)
		}

		notifications := v1.Group("/notifications")
		notifications.Use(auth)
		{
			notifications.GET("", ctrl.Notification.GetNotifications)
			notifications.POST("/read", ctrl.Notification.MarkAsRead)
		}

		// 브라우저는 업그레이드 요청에 헤더를 못 붙이므로 ?token= 허용
		v1.GET("/ws", auth, ctrl.WebSocket.Connect)

		bakerGroup := v1.Group("/baker")
		bakerGroup.Use(auth, baker)
		{
			bakerGroup.GET("/bakery", ctrl.Bakery.GetMyBakery)
			bakerGroup.PUT("/bakery/open", ctrl.Bakery.SetOpen)

			bakerGroup.GET("/orders", ctrl.Order.GetBakeryOrders)
			bakerGroup.PUT("/orders/:id/status", ctrl.Order.UpdateOrderStatus)

			bakerGroup.GET("/products", ctrl.Product.ListMyProducts)
			bakerGroup.POST("/products", ctrl.Product.CreateProduct)
			bakerGroup.PUT("/products/:id", ctrl.Product.UpdateProduct)
			bakerGroup.PUT("/products/:id/availability", ctrl.Product.SetProductAvailability)
			bakerGroup.DELETE("/products/:id", ctrl.Product.DeleteProduct)

			bakerGroup.GET("/categories", ctrl.Category.ListMyCategories)
			bakerGroup.POST("/categories", ctrl.Category.CreateCategory)
			bakerGroup.PUT("/categories/:id", ctrl.Category.UpdateCategory)
			bakerGroup.DELETE("/categories/:id", ctrl.Category.DeleteCategory)

			bakerGroup.GET("/coupons", ctrl.Coupon.ListCoupons)
			bakerGroup.POST("/coupons", ctrl.Coupon.CreateCoupon)
			bakerGroup.PATCH("/coupons/:id", ctrl.Coupon.SetCouponActive)
			bakerGroup.DELETE("/coupons/:id", ctrl.Coupon.DeleteCoupon)

			bakerGroup.POST("/reviews/:id/reply", ctrl.Review.ReplyToReview)

			if ctrl.Upload != nil {
				bakerGroup.POST("/uploads/presigned-url", ctrl.Upload.GeneratePresignedURL)
			}
		}

		adminGroup := v1.Group("/admin")
		adminGroup.Use(auth, admin)
		{
			adminGroup.GET("/orders", ctrl.Order.GetAllOrders)
			adminGroup.PUT("/orders/:id/status", ctrl.Order.UpdateOrderStatus)

			adminGroup.POST("/bakeries/:id/approve", ctrl.Bakery.ApproveBakery)
			adminGroup.POST("/bakeries/:id/suspend", ctrl.Bakery.SuspendBakery)
			adminGroup.POST("/bakeries/:id/reject", ctrl.Bakery.RejectBakery)
			adminGroup.PUT("/bakeries/:id/featured", ctrl.Bakery.SetFeatured)

			adminGroup.GET("/users", ctrl.User.ListUsers)
			adminGroup.PUT("/users/:id/active", ctrl.User.SetUserActive)

			adminGroup.PATCH("/reviews/:id", ctrl.Review.SetReviewVisibility)
			adminGroup.DELETE("/reviews/:id", ctrl.Review.DeleteReview)

			adminGroup.GET("/coupons", ctrl.Coupon.ListCoupons)
			adminGroup.POST("/coupons", ctrl.Coupon.CreateCoupon)
			adminGroup.PATCH("/coupons/:id", ctrl.Coupon.SetCouponActive)
			adminGroup.DELETE("/coupons/:id", ctrl.Coupon.DeleteCoupon)
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

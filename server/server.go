package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/storefront/pkg/auth"
	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/service"
)

type Server struct {
	config    *config.Config
	logger    *zap.Logger
	router    *gin.Engine
	tokens    *auth.TokenMaker
	accounts  *service.AccountService
	products  *service.ProductService
	orders    *service.OrderService
	addresses *service.AddressService
	reviews   *service.ReviewService
	wishlist  *service.WishlistService
}

type Services struct {
	Accounts  *service.AccountService
	Products  *service.ProductService
	Orders    *service.OrderService
	Addresses *service.AddressService
	Reviews   *service.ReviewService
	Wishlist  *service.WishlistService
}

func New(cfg *config.Config, logger *zap.Logger, tokens *auth.TokenMaker, svcs Services) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config:    cfg,
		logger:    logger,
		router:    router,
		tokens:    tokens,
		accounts:  svcs.Accounts,
		products:  svcs.Products,
		orders:    svcs.Orders,
		addresses: svcs.Addresses,
		reviews:   svcs.Reviews,
		wishlist:  svcs.Wishlist,
	}
}

func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", s.register)
			authGroup.POST("/login", s.login)
			authGroup.GET("/profile", s.requireAuth(), s.getProfile)
			authGroup.PUT("/profile", s.requireAuth(), s.updateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", s.listProducts)
			products.GET("/:id", s.getProduct)
			products.POST("", s.requireAuth(), s.requireAdmin(), s.createProduct)
			products.PUT("/:id", s.requireAuth(), s.requireAdmin(), s.updateProduct)
			products.DELETE("/:id", s.requireAuth(), s.requireAdmin(), s.deleteProduct)
			products.PUT("/:id/sale", s.requireAuth(), s.requireAdmin(), s.applySale)
			products.DELETE("/:id/sale", s.requireAuth(), s.requireAdmin(), s.removeSale)
			products.POST("/bulk-sale", s.requireAuth(), s.requireAdmin(), s.applyBulkSale)

			products.GET("/:id/reviews", s.listProductReviews)
			products.POST("/:id/reviews", s.requireAuth(), s.createReview)
		}

		reviews := v1.Group("/reviews", s.requireAuth())
		{
			reviews.PUT("/:id", s.updateReview)
			reviews.DELETE("/:id", s.deleteReview)
		}

		orders := v1.Group("/orders", s.requireAuth())
		{
			orders.POST("", s.createOrder)
			orders.GET("", s.listMyOrders)
			orders.GET("/admin/all", s.requireAdmin(), s.listAllOrders)
			orders.GET("/:id", s.getOrder)
			orders.PUT("/:id/cancel", s.cancelOrder)
			orders.PUT("/:id/status", s.requireAdmin(), s.updateOrderStatus)
			orders.PUT("/:id/payment", s.requireAdmin(), s.updatePaymentStatus)
		}

		addresses := v1.Group("/addresses", s.requireAuth())
		{
			addresses.GET("", s.listAddresses)
			addresses.POST("", s.createAddress)
			addresses.PUT("/:id", s.updateAddress)
			addresses.DELETE("/:id", s.deleteAddress)
		}

		wishlist := v1.Group("/wishlist", s.requireAuth())
		{
			wishlist.GET("", s.listWishlist)
			wishlist.POST("", s.addToWishlist)
			wishlist.DELETE("/:productId", s.removeFromWishlist)
		}
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Storefront API starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		requestID := uuid.NewString()
		c.Header("X-Request-Id", requestID)

		c.Next()

		logger.Info("HTTP request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

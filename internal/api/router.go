package api

import (
	"context"  // Context for the health probe
	"net/http" // HTTP status codes
	"time"     // Rate limit window

	"storefront/internal/middleware" // Custom middleware
	"storefront/internal/service"    // Business logic

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Deps is everything the router needs to build its handlers
type Deps struct {
	Auth    *service.AuthService
	Catalog *service.CatalogService
	Cart    *service.CartService
	Orders  *service.OrderService
	Ratings *service.RatingService

	Users         middleware.UserLookup       // Admin gate lookups
	Redis         *redis.Client               // Optional, enables rate limiting
	Ping          func(context.Context) error // Optional database health probe
	JWTSecret     string                      // Token signing secret
	CORSOrigin    string                      // Allowed browser origin
	AuthRateLimit int                         // Auth requests per minute per client
}

// NewRouter wires middleware and routes onto a fresh gin engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{d.CORSOrigin},                              // Storefront origin
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}, // Allowed methods
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"}, // Allowed headers
		ExposeHeaders:    []string{middleware.RequestIDHeader},                // Let clients read the request id
		AllowCredentials: true,                                                // Cookies and auth headers
		MaxAge:           12 * time.Hour,                                      // Preflight cache
	}))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authn := middleware.JWTAuthMiddleware(d.JWTSecret, d.Users) // Bearer token check
	admin := middleware.AdminOnlyMiddleware(d.Users)            // Admin role check
	// Per-client limiter on credential endpoints
	limit := func(name string) gin.HandlerFunc {
		return middleware.RateLimitMiddleware(d.Redis, name, d.AuthRateLimit, time.Minute)
	}

	base := r.Group("/api")

	// User routes
	users := base.Group("/users")
	users.POST("/register", RegisterHandler(d.Auth))           // Registration endpoint
	users.POST("/login", limit("login"), LoginHandler(d.Auth)) // Login endpoint

	// Admin routes
	admins := base.Group("/admin")
	admins.POST("/register", AdminRegisterHandler(d.Auth))                 // One-time admin registration
	admins.POST("/login", limit("admin-login"), AdminLoginHandler(d.Auth)) // Admin login endpoint

	// Password reset routes
	reset := base.Group("/auth", limit("auth"))
	reset.POST("/request-reset", RequestResetHandler(d.Auth))  // Email a reset code
	reset.POST("/verify-code", VerifyCodeHandler(d.Auth))      // Check a reset code
	reset.POST("/resetPassword", ResetPasswordHandler(d.Auth)) // Set a new password

	// Product routes
	products := base.Group("/products")
	products.GET("", ListProductsHandler(d.Catalog))                        // List all products
	products.GET("/getlatest", LatestProductsHandler(d.Catalog))            // Latest products
	products.GET("/:id", GetProductHandler(d.Catalog))                      // Single product
	products.POST("/create", authn, admin, CreateProductHandler(d.Catalog)) // Admin only product creation

	// Cart routes (protected by JWT)
	cart := base.Group("/cart", authn)
	cart.POST("", AddToCartHandler(d.Cart))                 // Add item to cart
	cart.GET("", GetCartHandler(d.Cart))                    // Get cart items
	cart.PUT("/:item_id", UpdateCartHandler(d.Cart))        // Update item quantity
	cart.DELETE("/:item_id", RemoveFromCartHandler(d.Cart)) // Remove one item
	cart.DELETE("", ClearCartHandler(d.Cart))               // Clear the cart

	// Order routes (protected by JWT)
	orders := base.Group("/orders", authn)
	orders.POST("", CreateOrderHandler(d.Orders))       // Place an order from submitted items
	orders.POST("/checkout", CheckoutHandler(d.Orders)) // Place an order from the cart
	orders.GET("", ListOrdersHandler(d.Orders))         // List own orders
	orders.DELETE("", ClearOrdersHandler(d.Orders))     // Delete own orders

	// Rating routes
	ratings := base.Group("/ratings")
	ratings.POST("", authn, SubmitRatingHandler(d.Ratings))          // Rate a product
	ratings.GET("/:productId", authn, ItemRatingsHandler(d.Ratings)) // Ratings of one product
	ratings.GET("", AllRatingsHandler(d.Ratings))                    // Ratings of all products

	return r
}

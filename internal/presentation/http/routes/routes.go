package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/clockshop-api/internal/config"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/internal/presentation/http/handler"
	"github.com/sangkips/clockshop-api/internal/presentation/http/middleware"
	"github.com/sangkips/clockshop-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// RoleAdmin may run the repair endpoints and manage warehouses
const RoleAdmin = "admin"

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Catalog   *handler.CatalogHandler
	Inventory *handler.InventoryHandler
	Sale      *handler.SaleHandler
	Customer  *handler.CustomerHandler
	Movement  *handler.MovementHandler
	Audit     *handler.AuditHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *logrus.Logger
}

// Setup creates the Gin router and registers all routes. Background work
// started for the router stops when ctx is done.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateCfg := middleware.DefaultRateLimiterConfig()
		if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
			rateCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
			rateCfg.BurstSize = deps.Cfg.RateLimit.Requests
		}
		protected.Use(middleware.NewClientRateLimiter(ctx, rateCfg).Middleware())

		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			TTL:    deps.Cfg.Ledger.IdempotencyTTL,
			Logger: deps.Logger,
		}))

		registerCatalogRoutes(protected, h)
		registerInventoryRoutes(protected, h)
		registerSaleRoutes(protected, h)
		registerCustomerRoutes(protected, h)
		registerMovementRoutes(protected, h)

		audit := protected.Group("/audit-logs")
		audit.Use(middleware.RequireRole(RoleAdmin))
		audit.GET("", h.Audit.List)
	}

	return router
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.POST("", h.Catalog.CreateProduct)
		products.GET("/:id", h.Catalog.GetProduct)
		products.PUT("/:id", h.Catalog.UpdateProduct)
		products.GET("/:id/batches", h.Inventory.ListProductBatches)
		products.POST("/:id/recalculate-stock", middleware.RequireRole(RoleAdmin), h.Inventory.RecalculateProductStock)
	}

	protected.GET("/categories", h.Catalog.ListCategories)
	protected.POST("/categories", h.Catalog.CreateCategory)
	protected.GET("/brands", h.Catalog.ListBrands)
	protected.POST("/brands", h.Catalog.CreateBrand)

	warehouses := protected.Group("/warehouses")
	{
		warehouses.GET("", h.Catalog.ListWarehouses)
		warehouses.POST("", middleware.RequireRole(RoleAdmin), h.Catalog.CreateWarehouse)
		warehouses.PUT("/:id/status", middleware.RequireRole(RoleAdmin), h.Catalog.SetWarehouseStatus)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	batches := protected.Group("/batches")
	{
		batches.POST("", h.Inventory.ReceiveBatch)
		batches.GET("/:id", h.Inventory.GetBatch)
	}

	purchases := protected.Group("/purchases")
	{
		purchases.GET("", h.Inventory.ListPurchases)
		purchases.POST("", h.Inventory.CreatePurchase)
		purchases.GET("/:id", h.Inventory.GetPurchase)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/cancel", h.Sale.Cancel)
		sales.GET("/:id/payments", h.Sale.ListPayments)
		sales.POST("/:id/payments", h.Sale.RecordPayment)
		sales.POST("/:id/recalculate-payments", middleware.RequireRole(RoleAdmin), h.Sale.RecalculatePayments)
		sales.GET("/:id/returns", h.Sale.ListReturns)
		sales.POST("/:id/returns", h.Sale.CreateReturn)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.GET("/:id/payments", h.Customer.ListPayments)
		customers.POST("/:id/payments", h.Customer.RecordPayment)
		customers.POST("/:id/recalculate-balance", middleware.RequireRole(RoleAdmin), h.Customer.RecalculateBalance)
	}
}

func registerMovementRoutes(protected *gin.RouterGroup, h *Handlers) {
	transfers := protected.Group("/transfers")
	{
		transfers.GET("", h.Movement.ListTransfers)
		transfers.POST("", h.Movement.CreateTransfer)
		transfers.GET("/:id", h.Movement.GetTransfer)
		transfers.POST("/:id/complete", h.Movement.CompleteTransfer)
		transfers.POST("/:id/cancel", h.Movement.CancelTransfer)
	}

	stockOuts := protected.Group("/stock-outs")
	{
		stockOuts.GET("", h.Movement.ListStockOuts)
		stockOuts.POST("", h.Movement.CreateStockOut)
		stockOuts.GET("/:id", h.Movement.GetStockOut)
		stockOuts.POST("/:id/complete", h.Movement.CompleteStockOut)
		stockOuts.POST("/:id/cancel", h.Movement.CancelStockOut)
	}
}

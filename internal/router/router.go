package router

import (
	"time"

	"pcxpress/internal/config"
	"pcxpress/internal/handler"
	"pcxpress/internal/infra"
	"pcxpress/internal/middleware"
	"pcxpress/internal/repository"
	"pcxpress/internal/service"
	"pcxpress/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	supplierSvc := service.NewSupplierService(supplierRepo)
	productSvc := service.NewProductService(productRepo, supplierRepo)
	stockSvc := service.NewStockService(productRepo, movementRepo, userRepo, dispatcher)
	saleSvc := service.NewSaleService(saleRepo, productRepo, movementRepo, poRepo, userRepo, dispatcher)
	poSvc := service.NewPurchaseOrderService(poRepo, productRepo, supplierRepo, movementRepo, saleSvc)
	restockSvc := service.NewRestockService(productRepo, supplierRepo, stockSvc)
	estimator := service.NewTrendEstimator(saleRepo)
	insightsSvc := service.NewInsightsService(productRepo, movementRepo, saleRepo, estimator, rdb)
	simulator := service.NewSimulator(poSvc, poRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc, productSvc)
	productsH := handler.NewProductsHandler(productSvc)
	stockH := handler.NewStockHandler(stockSvc)
	poH := handler.NewPurchaseOrdersHandler(poSvc, poRepo, cfg)
	salesH := handler.NewSalesHandler(saleSvc)
	restockH := handler.NewRestockHandler(restockSvc, productSvc)
	insightsH := handler.NewInsightsHandler(insightsSvc)
	simulationH := handler.NewSimulationHandler(simulator)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailCB))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		suppliers := v1.Group("/suppliers")
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.Get)
			suppliers.GET("/:id/products", suppliersH.Products)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Delete)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/low-stock", productsH.LowStock)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)

			// Inventory ledger — the only write path for quantities
			products.POST("/:id/stock/add", stockH.Add)
			products.POST("/:id/stock/remove", stockH.Remove)
			products.PUT("/:id/stock", stockH.Set)
			products.GET("/:id/movements", stockH.Movements)

			// Insights per product
			products.GET("/:id/forecast", insightsH.Forecast)
			products.GET("/:id/optimization", insightsH.StockOptimization)
		}

		orders := v1.Group("/purchase-orders")
		{
			orders.POST("", poH.Create)
			orders.GET("", poH.List)
			orders.GET("/statistics", poH.Statistics)
			orders.POST("/auto-generate", poH.AutoGenerate)
			orders.GET("/:id", poH.Get)
			orders.PUT("/:id", poH.Update)
			orders.DELETE("/:id", poH.Delete)
			orders.POST("/:id/approve", poH.Approve)
			orders.POST("/:id/reject", poH.Reject)
			orders.POST("/:id/receive", poH.Receive)
			orders.GET("/:id/document", poH.Document)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.List)
			sales.GET("/top-products", salesH.TopProducts)
			sales.GET("/:id", salesH.Get)
		}

		restock := v1.Group("/restock")
		{
			restock.GET("/analysis", restockH.Analysis)
			restock.POST("/all", restockH.RestockAll)
			restock.POST("/:id", restockH.RestockProduct)
		}

		v1.GET("/movements", stockH.RecentMovements)
		v1.GET("/alerts/low-stock", restockH.Alerts)
		v1.GET("/insights/overview", insightsH.Overview)

		simulation := v1.Group("/simulation")
		{
			simulation.POST("/start", simulationH.Start)
			simulation.POST("/stop", simulationH.Stop)
			simulation.GET("/status", simulationH.Status)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-retail-pos/internal/cache"
	"go-retail-pos/internal/handler"
	"go-retail-pos/internal/middleware"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/database"
	"go-retail-pos/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load() // optional .env for local dev

	log := logger.New()

	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.Category{}, &model.Supplier{}, &model.Product{},
		&model.RestockOrder{}, &model.OrderItem{},
		&model.Receiving{}, &model.ReceivedItem{},
		&model.Sale{}, &model.SaleItem{},
		&model.Settings{}, &model.User{},
	); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	// Settings snapshot cache; sales read it on every checkout.
	var settingsCache cache.SettingsCache = cache.NoopSettingsCache{}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		settingsCache = cache.NewRedisSettingsCache(addr, os.Getenv("REDIS_PASSWORD"), 0)
		log.WithField("addr", addr).Info("settings cache on redis")
	}

	hub := ws.NewHub(log)
	go hub.Run()

	// Wiring
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	restockRepo := repository.NewRestockOrderRepo(db)
	receivingRepo := repository.NewReceivingRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	userRepo := repository.NewUserRepo(db)

	settingsService := service.NewSettingsService(settingsRepo, settingsCache)
	stockService := service.NewStockService(productRepo, settingsService, db, hub, log)
	productService := service.NewProductService(productRepo, categoryRepo, supplierRepo)
	restockService := service.NewRestockService(restockRepo, receivingRepo, productRepo, supplierRepo, db)
	receivingService := service.NewReceivingService(receivingRepo, restockRepo, stockService, db, hub, log)
	saleService := service.NewSaleService(saleRepo, productRepo, stockService, settingsService, db, hub, log)
	reportService := service.NewReportService(saleRepo, productRepo, stockService, settingsService)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService, stockService)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	supplierHandler := handler.NewSupplierHandler(supplierRepo)
	restockHandler := handler.NewRestockHandler(restockService, stockService)
	receivingHandler := handler.NewReceivingHandler(receivingService)
	saleHandler := handler.NewSaleHandler(saleService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	reportHandler := handler.NewReportHandler(reportService)

	seedDefaults(settingsService, userRepo, log)

	app := fiber.New(fiber.Config{
		AppName: "Retail POS Backoffice v1.0",
	})
	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api")

	// Public
	api.Post("/users/login", authHandler.Login)

	// Everything else requires a valid token.
	protected := api.Group("", middleware.RequireAuth(userRepo))

	admin := middleware.RequireRole(model.RoleAdmin)
	adminOrManager := middleware.RequireRole(model.RoleAdmin, model.RoleManager)

	// Users
	protected.Post("/users/register", admin, userHandler.Register)
	protected.Get("/users", adminOrManager, userHandler.GetUsers)
	protected.Get("/users/:id", adminOrManager, userHandler.GetUser)
	protected.Put("/users/:id", admin, userHandler.UpdateUser)
	protected.Delete("/users/:id", admin, userHandler.DeleteUser)

	// Categories
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Post("/categories", adminOrManager, categoryHandler.CreateCategory)
	protected.Get("/categories/:id", categoryHandler.GetCategory)
	protected.Put("/categories/:id", adminOrManager, categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", admin, categoryHandler.DeleteCategory)

	// Products; /low-stock before /:id
	protected.Get("/products/low-stock", productHandler.GetLowStock)
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", adminOrManager, productHandler.CreateProduct)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Put("/products/:id", adminOrManager, productHandler.UpdateProduct)
	protected.Delete("/products/:id", admin, productHandler.DeleteProduct)
	protected.Post("/products/:id/stock", adminOrManager, productHandler.AdjustStock)

	// Suppliers
	protected.Get("/suppliers", supplierHandler.GetSuppliers)
	protected.Post("/suppliers", adminOrManager, supplierHandler.CreateSupplier)
	protected.Get("/suppliers/:id", supplierHandler.GetSupplier)
	protected.Put("/suppliers/:id", adminOrManager, supplierHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", admin, supplierHandler.DeleteSupplier)

	// Restock orders
	protected.Get("/restock-orders/suggestions", adminOrManager, restockHandler.GetSuggestions)
	protected.Post("/restock-orders", adminOrManager, restockHandler.CreateOrder)
	protected.Get("/restock-orders", adminOrManager, restockHandler.GetOrders)
	protected.Get("/restock-orders/:id", adminOrManager, restockHandler.GetOrder)
	protected.Put("/restock-orders/:id", adminOrManager, restockHandler.UpdateOrder)
	protected.Delete("/restock-orders/:id", admin, restockHandler.DeleteOrder)

	// Receivings: create and read only, the records are an immutable audit trail.
	protected.Post("/receivings", adminOrManager, receivingHandler.CreateReceiving)
	protected.Get("/receivings", adminOrManager, receivingHandler.GetReceivings)
	protected.Get("/receivings/:id", adminOrManager, receivingHandler.GetReceiving)

	// Sales
	protected.Get("/sales/range", saleHandler.GetSalesByDateRange)
	protected.Get("/sales/daily-report", saleHandler.GetDailySalesReport)
	protected.Post("/sales", saleHandler.CreateSale)
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Delete("/sales/:id", admin, saleHandler.DeleteSale)

	// Reports
	protected.Get("/reports/sales", adminOrManager, reportHandler.GetSalesReport)
	protected.Get("/reports/top-products", adminOrManager, reportHandler.GetTopSellingProducts)
	protected.Get("/reports/low-stock", adminOrManager, reportHandler.GetLowStockProducts)

	// Settings
	protected.Get("/settings", settingsHandler.GetSettings)
	protected.Put("/settings", admin, settingsHandler.UpdateSettings)

	// Stock event stream
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("forced shutdown")
	}
	log.Info("server exited")
}

// seedDefaults creates the settings row and a bootstrap admin on first run.
func seedDefaults(settings service.SettingsService, userRepo repository.UserRepository, log *logrus.Logger) {
	if _, err := settings.GetSettings(); err != nil {
		log.WithError(err).Warn("failed to seed settings")
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	admin := &model.User{
		Email:    email,
		FullName: "Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(password); err != nil {
		log.WithError(err).Warn("failed to hash admin password")
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.WithError(err).Warn("failed to create admin user")
		return
	}
	log.WithField("email", email).Info("admin user created")
}

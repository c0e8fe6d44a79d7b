package service

import (
	"io"
	"testing"

	"go-retail-pos/internal/cache"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the full service stack against an in-memory SQLite store so
// the transactional paths run against a real database.
type testEnv struct {
	db *gorm.DB

	products   repository.ProductRepository
	orders     repository.RestockOrderRepository
	receivings repository.ReceivingRepository
	sales      repository.SaleRepository

	settings  SettingsService
	stock     StockService
	restock   RestockService
	receiving ReceivingService
	sale      SaleService
	report    ReportService

	category model.Category
	supplier model.Supplier
	employee model.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A single connection keeps every session on the same in-memory store.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Category{}, &model.Supplier{}, &model.User{}, &model.Settings{},
		&model.Product{}, &model.RestockOrder{}, &model.OrderItem{},
		&model.Receiving{}, &model.ReceivedItem{},
		&model.Sale{}, &model.SaleItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		db:         db,
		products:   repository.NewProductRepo(db),
		orders:     repository.NewRestockOrderRepo(db),
		receivings: repository.NewReceivingRepo(db),
		sales:      repository.NewSaleRepo(db),
	}

	supplierRepo := repository.NewSupplierRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)

	env.settings = NewSettingsService(repository.NewSettingsRepo(db), cache.NoopSettingsCache{})
	env.stock = NewStockService(env.products, env.settings, db, nil, log)
	env.restock = NewRestockService(env.orders, env.receivings, env.products, supplierRepo, db)
	env.receiving = NewReceivingService(env.receivings, env.orders, env.stock, db, nil, log)
	env.sale = NewSaleService(env.sales, env.products, env.stock, env.settings, db, nil, log)
	env.report = NewReportService(env.sales, env.products, env.stock, env.settings)

	env.category = model.Category{Name: "Beverages"}
	if err := categoryRepo.Create(&env.category); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	env.supplier = model.Supplier{Name: "Acme Wholesale"}
	if err := supplierRepo.Create(&env.supplier); err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	env.employee = model.User{
		Email:    "cashier@example.com",
		FullName: "Cashier One",
		Role:     model.RoleEmployee,
		IsActive: true,
	}
	if err := env.employee.SetPassword("cashier-pass"); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := repository.NewUserRepo(db).Create(&env.employee); err != nil {
		t.Fatalf("seed employee: %v", err)
	}

	return env
}

func (env *testEnv) createProduct(t *testing.T, name string, price string, stock int) *model.Product {
	t.Helper()
	p, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("bad price %q: %v", price, err)
	}
	product := &model.Product{
		Name:       name,
		Price:      p,
		Stock:      stock,
		CategoryID: env.category.ID,
		SupplierID: env.supplier.ID,
	}
	if err := env.products.Create(product); err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return product
}

func (env *testEnv) productStock(t *testing.T, product *model.Product) int {
	t.Helper()
	fresh, err := env.products.FindByID(product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return fresh.Stock
}

func (env *testEnv) createOrder(t *testing.T, lines ...OrderLine) *model.RestockOrder {
	t.Helper()
	order, err := env.restock.CreateOrder(&CreateOrderRequest{
		SupplierID: env.supplier.ID,
		Lines:      lines,
	}, "test")
	if err != nil {
		t.Fatalf("create restock order: %v", err)
	}
	return order
}

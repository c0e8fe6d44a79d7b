package service

import (
	"errors"
	"testing"
	"time"

	"go-retail-pos/internal/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestCreateSaleComputesVatAndDecrementsStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Latte", "10.00", 5)

	sale, err := env.sale.CreateSale(&CreateSaleRequest{
		Lines: []SaleLine{{ProductID: product.ID, Quantity: 2}},
	}, env.employee.ID, env.employee.FullName)
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	if !sale.Subtotal.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("subtotal = %s, want 20", sale.Subtotal)
	}
	if !sale.VatAmount.Equal(decimal.RequireFromString("4")) {
		t.Fatalf("vat = %s, want 4", sale.VatAmount)
	}
	if !sale.Total.Equal(decimal.RequireFromString("24")) {
		t.Fatalf("total = %s, want 24", sale.Total)
	}
	if sale.Currency != "USD" {
		t.Fatalf("currency = %q, want USD", sale.Currency)
	}
	if got := env.productStock(t, product); got != 3 {
		t.Fatalf("stock = %d, want 3", got)
	}
}

func TestCreateSaleInsufficientStockIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	plenty := env.createProduct(t, "Tea", "2.00", 50)
	scarce := env.createProduct(t, "Cake", "5.00", 1)

	_, err := env.sale.CreateSale(&CreateSaleRequest{
		Lines: []SaleLine{
			{ProductID: plenty.ID, Quantity: 3},
			{ProductID: scarce.ID, Quantity: 2},
		},
	}, env.employee.ID, env.employee.FullName)
	var is *apperr.InsufficientStockError
	if !errors.As(err, &is) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if is.Available != 1 || is.Requested != 2 {
		t.Fatalf("unexpected detail: %+v", is)
	}

	// The valid line rolled back along with the failing one.
	if got := env.productStock(t, plenty); got != 50 {
		t.Fatalf("stock = %d, want 50", got)
	}
	sales, err := env.sale.GetAllSales()
	if err != nil {
		t.Fatalf("list sales: %v", err)
	}
	if len(sales) != 0 {
		t.Fatalf("sale persisted despite rollback: %d", len(sales))
	}
}

// Two lines for the same product that are individually fine but jointly
// exceed stock must fail at the conditional update stage.
func TestCreateSaleDuplicateLinesCannotOversell(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Scone", "3.00", 5)

	_, err := env.sale.CreateSale(&CreateSaleRequest{
		Lines: []SaleLine{
			{ProductID: product.ID, Quantity: 3},
			{ProductID: product.ID, Quantity: 3},
		},
	}, env.employee.ID, env.employee.FullName)
	var is *apperr.InsufficientStockError
	if !errors.As(err, &is) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if got := env.productStock(t, product); got != 5 {
		t.Fatalf("stock = %d, want 5", got)
	}
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Muffin", "4.00", 5)

	sale, err := env.sale.CreateSale(&CreateSaleRequest{
		Lines: []SaleLine{{ProductID: product.ID, Quantity: 2}},
	}, env.employee.ID, env.employee.FullName)
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}
	if got := env.productStock(t, product); got != 3 {
		t.Fatalf("stock after sale = %d, want 3", got)
	}

	if err := env.sale.DeleteSale(sale.ID, env.employee.FullName); err != nil {
		t.Fatalf("delete sale: %v", err)
	}
	if got := env.productStock(t, product); got != 5 {
		t.Fatalf("stock after delete = %d, want 5", got)
	}

	_, err = env.sale.GetSale(sale.ID)
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError after delete", err)
	}

	if err := env.sale.DeleteSale(sale.ID, env.employee.FullName); !errors.As(err, &nf) {
		t.Fatalf("second delete err = %v, want NotFoundError", err)
	}
}

// The sale keeps the price and VAT rate that were current when it was made.
func TestSaleSnapshotsPriceAndVatRate(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Cold Brew", "8.00", 10)

	sale, err := env.sale.CreateSale(&CreateSaleRequest{
		Lines: []SaleLine{{ProductID: product.ID, Quantity: 1}},
	}, env.employee.ID, env.employee.FullName)
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	product.Price = decimal.RequireFromString("9.50")
	if err := env.products.Update(product); err != nil {
		t.Fatalf("update price: %v", err)
	}
	newRate := decimal.RequireFromString("25")
	if _, err := env.settings.UpdateSettings(&UpdateSettingsRequest{VatRate: &newRate}, "admin"); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	reloaded, err := env.sale.GetSale(sale.ID)
	if err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if !reloaded.Items[0].Price.Equal(decimal.RequireFromString("8")) {
		t.Fatalf("item price = %s, want the 8.00 snapshot", reloaded.Items[0].Price)
	}
	if !reloaded.VatRate.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("vat rate = %s, want the 20 snapshot", reloaded.VatRate)
	}
}

func TestGetSalesByDateRangeValidation(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Juice", "3.50", 10)

	if _, err := env.sale.CreateSale(&CreateSaleRequest{
		Lines: []SaleLine{{ProductID: product.ID, Quantity: 1}},
	}, env.employee.ID, env.employee.FullName); err != nil {
		t.Fatalf("create sale: %v", err)
	}

	now := time.Now()
	sales, err := env.sale.GetSalesByDateRange(now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("date range: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("sales in range = %d, want 1", len(sales))
	}

	_, err = env.sale.GetSalesByDateRange(now, now.Add(-time.Hour))
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError for inverted range", err)
	}

	daily, err := env.sale.GetDailySalesReport(now)
	if err != nil {
		t.Fatalf("daily report: %v", err)
	}
	if len(daily) != 1 {
		t.Fatalf("daily sales = %d, want 1", len(daily))
	}
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sale.CreateSale(&CreateSaleRequest{
		Lines: []SaleLine{{ProductID: uuid.New(), Quantity: 1}},
	}, env.employee.ID, env.employee.FullName)
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

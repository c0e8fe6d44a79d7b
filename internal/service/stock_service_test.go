package service

import (
	"errors"
	"testing"

	"go-retail-pos/internal/apperr"

	"github.com/google/uuid"
)

func TestAdjustStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Granola Bar", "2.50", 10)

	updated, err := env.stock.AdjustStock(product.ID, -4, "manager")
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if updated.Stock != 6 {
		t.Fatalf("stock = %d, want 6", updated.Stock)
	}

	if _, err := env.stock.AdjustStock(product.ID, 0, "manager"); err == nil {
		t.Fatalf("zero delta accepted")
	}

	_, err = env.stock.AdjustStock(product.ID, -7, "manager")
	var is *apperr.InsufficientStockError
	if !errors.As(err, &is) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if is.Available != 6 || is.Requested != 7 {
		t.Fatalf("unexpected detail: %+v", is)
	}
	if got := env.productStock(t, product); got != 6 {
		t.Fatalf("stock moved on rejected adjustment: %d", got)
	}

	_, err = env.stock.AdjustStock(uuid.New(), 1, "manager")
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestFindLowStockOrderingAndThreshold(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "Full Shelf", "1.00", 40)
	env.createProduct(t, "Half Shelf", "1.00", 8)
	env.createProduct(t, "Empty Shelf", "1.00", 2)

	// Nil threshold uses the configured store default of 10.
	low, err := env.stock.FindLowStock(nil)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("low stock count = %d, want 2", len(low))
	}
	if low[0].Name != "Empty Shelf" || low[1].Name != "Half Shelf" {
		t.Fatalf("ordering wrong: %s, %s", low[0].Name, low[1].Name)
	}

	five := 5
	low, err = env.stock.FindLowStock(&five)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(low) != 1 || low[0].Name != "Empty Shelf" {
		t.Fatalf("explicit threshold result wrong: %+v", low)
	}

	negative := -1
	if _, err := env.stock.FindLowStock(&negative); err == nil {
		t.Fatalf("negative threshold accepted")
	}
}

func TestSuggestRestockItems(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "Stocked", "1.00", 30)
	low := env.createProduct(t, "Running Out", "1.00", 3)

	suggestions, err := env.stock.SuggestRestockItems()
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("suggestion count = %d, want 1", len(suggestions))
	}
	s := suggestions[0]
	if s.ProductID != low.ID {
		t.Fatalf("suggested wrong product: %s", s.ProductName)
	}
	// threshold 10 - stock 3 + buffer 10
	if s.SuggestedOrderQuantity != 17 {
		t.Fatalf("suggested quantity = %d, want 17", s.SuggestedOrderQuantity)
	}
	if s.SupplierID != env.supplier.ID || s.SupplierName != env.supplier.Name {
		t.Fatalf("supplier not carried on suggestion: %+v", s)
	}
}

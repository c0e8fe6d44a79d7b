package service

import (
	"errors"

	"go-retail-pos/internal/apperr"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StockService is the product stock ledger. Every stock-affecting path
// (sales, receivings, manual corrections) goes through it so the
// non-negativity invariant is enforced in exactly one place.
type StockService interface {
	AdjustStock(productID uuid.UUID, delta int, actor string) (*model.Product, error)
	ApplyDelta(tx *gorm.DB, productID uuid.UUID, delta int) (*model.Product, error)
	FindLowStock(threshold *int) ([]model.Product, error)
	SuggestRestockItems() ([]RestockSuggestion, error)
}

// RestockSuggestion pairs a low-stock product with an order quantity hint.
type RestockSuggestion struct {
	ProductID              uuid.UUID `json:"product_id"`
	ProductName            string    `json:"product_name"`
	CurrentStock           int       `json:"current_stock"`
	SuggestedOrderQuantity int       `json:"suggested_order_quantity"`
	SupplierID             uuid.UUID `json:"supplier_id"`
	SupplierName           string    `json:"supplier_name"`
}

type stockService struct {
	productRepo repository.ProductRepository
	settings    SettingsService
	db          *gorm.DB
	hub         *ws.Hub
	log         *logrus.Logger
}

func NewStockService(productRepo repository.ProductRepository, settings SettingsService, db *gorm.DB, hub *ws.Hub, log *logrus.Logger) StockService {
	return &stockService{
		productRepo: productRepo,
		settings:    settings,
		db:          db,
		hub:         hub,
		log:         log,
	}
}

// AdjustStock applies a manual correction in its own transaction.
func (s *stockService) AdjustStock(productID uuid.UUID, delta int, actor string) (*model.Product, error) {
	if delta == 0 {
		return nil, apperr.Validation("stock delta must not be zero")
	}

	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = s.ApplyDelta(tx, productID, delta)
		return err
	})
	if err != nil {
		if apperr.IsDomain(err) {
			return nil, err
		}
		return nil, apperr.Transaction("adjust stock", err)
	}

	s.log.WithFields(logrus.Fields{
		"product_id": productID,
		"delta":      delta,
		"new_stock":  product.Stock,
		"actor":      actor,
	}).Info("stock adjusted")

	s.hub.Publish(ws.NewStockUpdate(ws.ActionStockAdjusted, actor, ws.StockChange{
		ProductID:   product.ID,
		ProductName: product.Name,
		Delta:       delta,
		NewStock:    product.Stock,
	}))

	return product, nil
}

// ApplyDelta mutates stock inside the caller's transaction. The conditional
// update either applies the full delta or touches nothing.
func (s *stockService) ApplyDelta(tx *gorm.DB, productID uuid.UUID, delta int) (*model.Product, error) {
	rows, err := s.productRepo.AdjustStock(tx, productID, delta)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		product, err := s.productRepo.FindByIDTx(tx, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product", productID.String())
		}
		if err != nil {
			return nil, err
		}
		return nil, &apperr.InsufficientStockError{
			ProductID: productID.String(),
			Available: product.Stock,
			Requested: -delta,
		}
	}

	return s.productRepo.FindByIDTx(tx, productID)
}

// FindLowStock lists active products at or below the threshold, lowest
// stock first. A nil threshold falls back to the configured store default.
func (s *stockService) FindLowStock(threshold *int) ([]model.Product, error) {
	limit, err := s.resolveThreshold(threshold)
	if err != nil {
		return nil, err
	}
	return s.productRepo.FindLowStock(limit)
}

func (s *stockService) SuggestRestockItems() ([]RestockSuggestion, error) {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindLowStock(settings.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	suggestions := make([]RestockSuggestion, 0, len(products))
	for i := range products {
		p := &products[i]
		suggestion := RestockSuggestion{
			ProductID:              p.ID,
			ProductName:            p.Name,
			CurrentStock:           p.Stock,
			SuggestedOrderQuantity: settings.LowStockThreshold - p.Stock + 10,
			SupplierID:             p.SupplierID,
		}
		if p.Supplier != nil {
			suggestion.SupplierName = p.Supplier.Name
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions, nil
}

func (s *stockService) resolveThreshold(threshold *int) (int, error) {
	if threshold != nil {
		if *threshold < 0 {
			return 0, apperr.Validation("threshold must not be negative")
		}
		return *threshold, nil
	}
	settings, err := s.settings.GetSettings()
	if err != nil {
		return 0, err
	}
	return settings.LowStockThreshold, nil
}

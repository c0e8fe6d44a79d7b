package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/apperr"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(req *CreateSaleRequest, employeeID uuid.UUID, actor string) (*model.Sale, error)
	DeleteSale(saleID uuid.UUID, actor string) error
	GetSale(id uuid.UUID) (*model.Sale, error)
	GetAllSales() ([]model.Sale, error)
	GetSalesByDateRange(start, end time.Time) ([]model.Sale, error)
	GetDailySalesReport(date time.Time) ([]model.Sale, error)
}

type SaleLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateSaleRequest struct {
	Lines []SaleLine `json:"items" validate:"required,min=1,dive"`
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	stock       StockService
	settings    SettingsService
	db          *gorm.DB
	hub         *ws.Hub
	log         *logrus.Logger
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	stock StockService,
	settings SettingsService,
	db *gorm.DB,
	hub *ws.Hub,
	log *logrus.Logger,
) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		stock:       stock,
		settings:    settings,
		db:          db,
		hub:         hub,
		log:         log,
	}
}

var oneHundred = decimal.NewFromInt(100)

// CreateSale prices every line from the product's current price, applies
// the store VAT rate and decrements stock, all-or-nothing. Prices and the
// VAT rate are snapshots: later product or settings edits never change a
// persisted sale.
func (s *saleService) CreateSale(req *CreateSaleRequest, employeeID uuid.UUID, actor string) (*model.Sale, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}

	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}

	var (
		sale    *model.Sale
		changes []ws.StockChange
	)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		subtotal := decimal.Zero
		saleItems := make([]model.SaleItem, 0, len(req.Lines))

		// Validate and price every line before any stock moves.
		for _, line := range req.Lines {
			product, err := s.productRepo.FindByIDTx(tx, line.ProductID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product", line.ProductID.String())
			}
			if err != nil {
				return err
			}
			if product.Stock < line.Quantity {
				return &apperr.InsufficientStockError{
					ProductID: product.ID.String(),
					Available: product.Stock,
					Requested: line.Quantity,
				}
			}
			subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			saleItems = append(saleItems, model.SaleItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			})
		}

		// Decrement through the ledger; the conditional update also catches
		// duplicate lines for the same product adding up past the stock.
		for _, line := range req.Lines {
			product, err := s.stock.ApplyDelta(tx, line.ProductID, -line.Quantity)
			if err != nil {
				return err
			}
			changes = append(changes, ws.StockChange{
				ProductID:   product.ID,
				ProductName: product.Name,
				Delta:       -line.Quantity,
				NewStock:    product.Stock,
			})
		}

		vatAmount := subtotal.Mul(settings.VatRate).Div(oneHundred).Round(2)
		sale = &model.Sale{
			Date:       time.Now(),
			Subtotal:   subtotal,
			VatRate:    settings.VatRate,
			VatAmount:  vatAmount,
			Total:      subtotal.Add(vatAmount),
			Currency:   settings.Currency,
			EmployeeID: employeeID,
			Items:      saleItems,
		}
		sale.CreatedBy = actor
		sale.UpdatedBy = actor
		return s.saleRepo.Create(tx, sale)
	})
	if err != nil {
		if apperr.IsDomain(err) {
			return nil, err
		}
		return nil, apperr.Transaction("create sale", err)
	}

	s.log.WithFields(logrus.Fields{
		"sale_id": sale.ID,
		"total":   sale.Total,
		"lines":   len(req.Lines),
		"actor":   actor,
	}).Info("sale created")

	s.hub.Publish(ws.NewStockUpdate(ws.ActionSaleCreated, actor, changes...))

	return s.saleRepo.FindByID(sale.ID)
}

// DeleteSale restores stock for every sold item and removes the sale, as
// one unit: the restoration and the deletion succeed or fail together.
func (s *saleService) DeleteSale(saleID uuid.UUID, actor string) error {
	var changes []ws.StockChange

	err := s.db.Transaction(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.FindByIDTx(tx, saleID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("sale", saleID.String())
		}
		if err != nil {
			return err
		}

		for _, item := range sale.Items {
			product, err := s.stock.ApplyDelta(tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			changes = append(changes, ws.StockChange{
				ProductID:   product.ID,
				ProductName: product.Name,
				Delta:       item.Quantity,
				NewStock:    product.Stock,
			})
		}

		return s.saleRepo.Delete(tx, sale)
	})
	if err != nil {
		if apperr.IsDomain(err) {
			return err
		}
		return apperr.Transaction("delete sale", err)
	}

	s.log.WithFields(logrus.Fields{
		"sale_id": saleID,
		"actor":   actor,
	}).Info("sale deleted, stock restored")

	s.hub.Publish(ws.NewStockUpdate(ws.ActionSaleDeleted, actor, changes...))

	return nil
}

func (s *saleService) GetSale(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("sale", id.String())
	}
	return sale, err
}

func (s *saleService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *saleService) GetSalesByDateRange(start, end time.Time) ([]model.Sale, error) {
	if end.Before(start) {
		return nil, apperr.Validation("end date is before start date")
	}
	return s.saleRepo.FindByDateRange(start, end)
}

// GetDailySalesReport lists the sales of one calendar day in the store's
// configured timezone.
func (s *saleService) GetDailySalesReport(date time.Time) ([]model.Sale, error) {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		loc = time.UTC
	}

	local := date.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return s.saleRepo.FindByDateRange(start, end)
}

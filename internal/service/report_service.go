package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/apperr"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportService interface {
	GetSalesReport(start, end time.Time) (*SalesReport, error)
	GetTopSellingProducts(limit int) ([]TopProduct, error)
	GetLowStockProducts() ([]model.Product, error)
}

type SalesReport struct {
	StartDate    time.Time          `json:"start_date"`
	EndDate      time.Time          `json:"end_date"`
	TotalSales   decimal.Decimal    `json:"total_sales"`
	SalesCount   int                `json:"sales_count"`
	Currency     string             `json:"currency"`
	ProductSales []ProductSalesLine `json:"product_sales"`
}

type ProductSalesLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

type TopProduct struct {
	ProductID     uuid.UUID      `json:"product_id"`
	TotalQuantity int            `json:"total_quantity"`
	Product       *model.Product `json:"product,omitempty"`
}

type reportService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	stock       StockService
	settings    SettingsService
}

func NewReportService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	stock StockService,
	settings SettingsService,
) ReportService {
	return &reportService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		stock:       stock,
		settings:    settings,
	}
}

func (s *reportService) GetSalesReport(start, end time.Time) (*SalesReport, error) {
	if end.Before(start) {
		return nil, apperr.Validation("end date is before start date")
	}
	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.FindByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	byProduct := make(map[uuid.UUID]*ProductSalesLine)
	var order []uuid.UUID
	for i := range sales {
		total = total.Add(sales[i].Total)
		for _, item := range sales[i].Items {
			line, ok := byProduct[item.ProductID]
			if !ok {
				line = &ProductSalesLine{ProductID: item.ProductID, Total: decimal.Zero}
				if item.Product != nil {
					line.Name = item.Product.Name
				}
				byProduct[item.ProductID] = line
				order = append(order, item.ProductID)
			}
			line.Quantity += item.Quantity
			line.Total = line.Total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	productSales := make([]ProductSalesLine, 0, len(order))
	for _, id := range order {
		productSales = append(productSales, *byProduct[id])
	}

	return &SalesReport{
		StartDate:    start,
		EndDate:      end,
		TotalSales:   total,
		SalesCount:   len(sales),
		Currency:     settings.Currency,
		ProductSales: productSales,
	}, nil
}

func (s *reportService) GetTopSellingProducts(limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.saleRepo.TopSelling(limit)
	if err != nil {
		return nil, err
	}

	result := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		top := TopProduct{ProductID: row.ProductID, TotalQuantity: row.TotalQuantity}
		product, err := s.productRepo.FindByID(row.ProductID)
		if err == nil {
			top.Product = product
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		result = append(result, top)
	}
	return result, nil
}

func (s *reportService) GetLowStockProducts() ([]model.Product, error) {
	return s.stock.FindLowStock(nil)
}

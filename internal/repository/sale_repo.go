package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TopProductRow is the aggregation row behind the top-sellers report.
type TopProductRow struct {
	ProductID     uuid.UUID `json:"product_id"`
	TotalQuantity int       `json:"total_quantity"`
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	FindByDateRange(start, end time.Time) ([]model.Sale, error)
	Delete(tx *gorm.DB, sale *model.Sale) error
	TopSelling(limit int) ([]TopProductRow, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items.Product").Preload("Employee").
		Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *saleRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := tx.Preload("Items.Product").Preload("Employee").First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByDateRange(start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items.Product").Preload("Employee").
		Where("date >= ? AND date <= ?", start, end).
		Order("date").Find(&sales).Error
	return sales, err
}

// Delete soft-deletes the sale and its items; the rows stay queryable for
// audits via Unscoped.
func (r *saleRepo) Delete(tx *gorm.DB, sale *model.Sale) error {
	if err := tx.Where("sale_id = ?", sale.ID).Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(sale).Error
}

func (r *saleRepo) TopSelling(limit int) ([]TopProductRow, error) {
	var rows []TopProductRow
	err := r.db.Model(&model.SaleItem{}).
		Select("product_id, SUM(quantity) AS total_quantity").
		Group("product_id").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

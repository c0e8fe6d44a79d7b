package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceivingRepository interface {
	Create(tx *gorm.DB, receiving *model.Receiving) error
	FindAll() ([]model.Receiving, error)
	FindByID(id uuid.UUID) (*model.Receiving, error)
	CountByOrder(orderID uuid.UUID) (int64, error)
}

type receivingRepo struct {
	db *gorm.DB
}

func NewReceivingRepo(db *gorm.DB) ReceivingRepository {
	return &receivingRepo{db}
}

func (r *receivingRepo) Create(tx *gorm.DB, receiving *model.Receiving) error {
	return tx.Create(receiving).Error
}

func (r *receivingRepo) FindAll() ([]model.Receiving, error) {
	var receivings []model.Receiving
	err := r.db.Preload("RestockOrder").Preload("ReceivedBy").Preload("Items.Product").
		Order("date_received DESC").Find(&receivings).Error
	return receivings, err
}

func (r *receivingRepo) FindByID(id uuid.UUID) (*model.Receiving, error) {
	var receiving model.Receiving
	err := r.db.Preload("RestockOrder").Preload("ReceivedBy").Preload("Items.Product").
		First(&receiving, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &receiving, nil
}

func (r *receivingRepo) CountByOrder(orderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Receiving{}).
		Where("restock_order_id = ?", orderID).Count(&count).Error
	return count, err
}

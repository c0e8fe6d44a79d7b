package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RestockOrderRepository interface {
	Create(order *model.RestockOrder) error
	FindAll() ([]model.RestockOrder, error)
	FindByID(id uuid.UUID) (*model.RestockOrder, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.RestockOrder, error)
	SaveOrder(tx *gorm.DB, order *model.RestockOrder) error
	SaveItem(tx *gorm.DB, item *model.OrderItem) error
	FindItemTx(tx *gorm.DB, itemID uuid.UUID) (*model.OrderItem, error)
	IncrementReceived(tx *gorm.DB, itemID uuid.UUID, qty int) (int64, error)
	ReplaceItems(tx *gorm.DB, orderID uuid.UUID, items []model.OrderItem) error
	HardDelete(id uuid.UUID) error
}

type restockRepo struct {
	db *gorm.DB
}

func NewRestockOrderRepo(db *gorm.DB) RestockOrderRepository {
	return &restockRepo{db}
}

func (r *restockRepo) Create(order *model.RestockOrder) error {
	return r.db.Create(order).Error
}

func (r *restockRepo) FindAll() ([]model.RestockOrder, error) {
	var orders []model.RestockOrder
	err := r.db.Preload("Supplier").Preload("Items.Product").
		Order("ordered_date DESC").Find(&orders).Error
	return orders, err
}

func (r *restockRepo) FindByID(id uuid.UUID) (*model.RestockOrder, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *restockRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.RestockOrder, error) {
	var order model.RestockOrder
	err := tx.Preload("Supplier").Preload("Items.Product").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SaveOrder persists status/received-date changes on the order row only,
// not its associations.
func (r *restockRepo) SaveOrder(tx *gorm.DB, order *model.RestockOrder) error {
	return tx.Omit("Supplier", "Items").Save(order).Error
}

func (r *restockRepo) SaveItem(tx *gorm.DB, item *model.OrderItem) error {
	return tx.Omit("Product").Save(item).Error
}

func (r *restockRepo) FindItemTx(tx *gorm.DB, itemID uuid.UUID) (*model.OrderItem, error) {
	var item model.OrderItem
	if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// IncrementReceived adds qty to the item's received counter as a single
// conditional UPDATE, the same way ProductRepository.AdjustStock guards
// stock. The cap is re-checked against the stored row under its lock, so
// two concurrent receivings cannot jointly exceed the ordered quantity.
// Zero rows means the increment would break the cap.
func (r *restockRepo) IncrementReceived(tx *gorm.DB, itemID uuid.UUID, qty int) (int64, error) {
	res := tx.Model(&model.OrderItem{}).
		Where("id = ? AND quantity_received + ? <= quantity_ordered", itemID, qty).
		Update("quantity_received", gorm.Expr("quantity_received + ?", qty))
	return res.RowsAffected, res.Error
}

// ReplaceItems discards the order's current item set and writes the new one.
func (r *restockRepo) ReplaceItems(tx *gorm.DB, orderID uuid.UUID, items []model.OrderItem) error {
	if err := tx.Unscoped().Where("restock_order_id = ?", orderID).
		Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].RestockOrderID = orderID
	}
	return tx.Create(&items).Error
}

func (r *restockRepo) HardDelete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("restock_order_id = ?", id).
			Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.RestockOrder{}, "id = ?", id).Error
	})
}

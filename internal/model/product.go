package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product stock is owned by the stock ledger service; nothing else writes it.
type Product struct {
	BaseModel
	Name       string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price" validate:"dgte0"`
	Stock      int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category   *Category       `json:"category,omitempty" validate:"-"`
	SupplierID uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id" validate:"uuid_required"`
	Supplier   *Supplier       `json:"supplier,omitempty" validate:"-"`
}

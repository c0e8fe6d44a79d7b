package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale snapshots everything money-related at creation time: item prices, the
// VAT rate and the currency must not track later product or settings edits.
type Sale struct {
	BaseModel
	Date       time.Time       `gorm:"not null;index" json:"date"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	VatRate    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"vat_rate"`
	VatAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vat_amount"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Currency   string          `gorm:"type:varchar(10);not null" json:"currency"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee   *User           `json:"employee,omitempty"`
	Items      []SaleItem      `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"` // unit price at sale time
}

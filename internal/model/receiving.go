package model

import (
	"time"

	"github.com/google/uuid"
)

// Receiving is the immutable audit record of one delivery event against a
// restock order. Order item counters and product stock are projections of
// the sum of these records; there is deliberately no update or delete path.
type Receiving struct {
	BaseModel
	RestockOrderID uuid.UUID      `gorm:"type:uuid;not null;index" json:"restock_order_id"`
	RestockOrder   *RestockOrder  `json:"restock_order,omitempty"`
	ReceivedByID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"received_by_id"`
	ReceivedBy     *User          `json:"received_by,omitempty"`
	DateReceived   time.Time      `gorm:"not null" json:"date_received"`
	Status         string         `gorm:"type:varchar(30)" json:"status"` // recorded label only, never drives state
	Items          []ReceivedItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// ReceivedItem is a write-once product/quantity pair inside a receiving.
type ReceivedItem struct {
	BaseModel
	ReceivingID      uuid.UUID `gorm:"type:uuid;not null;index" json:"receiving_id"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product          *Product  `json:"product,omitempty"`
	QuantityReceived int       `gorm:"not null" json:"quantity_received"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus applies to both restock orders and their line items. It is
// always derived from quantities, never taken from client input.
type OrderStatus string

const (
	StatusPending           OrderStatus = "Pending"
	StatusPartiallyReceived OrderStatus = "Partially Received"
	StatusCompleted         OrderStatus = "Completed"
)

// RestockOrder is a purchase request to a supplier. Its status and received
// date are maintained by the receiving reconciler only.
type RestockOrder struct {
	BaseModel
	SupplierID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"supplier_id" validate:"uuid_required"`
	Supplier     *Supplier   `json:"supplier,omitempty" validate:"-"`
	OrderedDate  time.Time   `gorm:"not null" json:"ordered_date"`
	ReceivedDate *time.Time  `json:"received_date,omitempty"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Items        []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty" validate:"-"`
}

// DeriveStatus recomputes the order status from its items: Completed when
// every item is completed, Partially Received when anything has arrived,
// Pending otherwise.
func (o *RestockOrder) DeriveStatus() OrderStatus {
	if len(o.Items) == 0 {
		return StatusPending
	}
	allCompleted := true
	anyReceived := false
	for i := range o.Items {
		if o.Items[i].QuantityReceived > 0 {
			anyReceived = true
		}
		if o.Items[i].DeriveStatus() != StatusCompleted {
			allCompleted = false
		}
	}
	switch {
	case allCompleted:
		return StatusCompleted
	case anyReceived:
		return StatusPartiallyReceived
	default:
		return StatusPending
	}
}

// OrderItem is one product line on a restock order. QuantityOrdered is
// immutable after creation; QuantityReceived only ever grows and never
// exceeds QuantityOrdered.
type OrderItem struct {
	BaseModel
	RestockOrderID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"restock_order_id"`
	ProductID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product          *Product    `json:"product,omitempty" validate:"-"`
	QuantityOrdered  int         `gorm:"not null" json:"quantity_ordered" validate:"required,gt=0"`
	QuantityReceived int         `gorm:"not null;default:0" json:"quantity_received"`
	Status           OrderStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
}

func (i *OrderItem) DeriveStatus() OrderStatus {
	switch {
	case i.QuantityReceived >= i.QuantityOrdered:
		return StatusCompleted
	case i.QuantityReceived > 0:
		return StatusPartiallyReceived
	default:
		return StatusPending
	}
}

package ws

import "github.com/google/uuid"

// Stock event actions
const (
	ActionReceivingRecorded = "receiving_recorded"
	ActionSaleCreated       = "sale_created"
	ActionSaleDeleted       = "sale_deleted"
	ActionStockAdjusted     = "stock_adjusted"
)

// StockUpdate is pushed whenever product stock changes.
type StockUpdate struct {
	Type    string        `json:"type"`
	Action  string        `json:"action"`
	Actor   string        `json:"actor,omitempty"`
	Changes []StockChange `json:"changes"`
}

type StockChange struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Delta       int       `json:"delta"`
	NewStock    int       `json:"new_stock"`
}

func NewStockUpdate(action, actor string, changes ...StockChange) StockUpdate {
	return StockUpdate{
		Type:    "stock_update",
		Action:  action,
		Actor:   actor,
		Changes: changes,
	}
}

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
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReceivingService reconciles delivery events against restock orders. Each
// recorded receiving is the ledger of truth; order item counters and product
// stock are projections kept consistent inside one transaction.
type ReceivingService interface {
	RecordReceiving(req *RecordReceivingRequest, receivedBy uuid.UUID, actor string) (*model.Receiving, error)
	GetReceiving(id uuid.UUID) (*model.Receiving, error)
	GetAllReceivings() ([]model.Receiving, error)
}

type ReceivingLine struct {
	ProductID        uuid.UUID `json:"product_id" validate:"uuid_required"`
	QuantityReceived int       `json:"quantity_received" validate:"required,gt=0"`
}

type RecordReceivingRequest struct {
	RestockOrderID uuid.UUID       `json:"restock_order_id" validate:"uuid_required"`
	Status         string          `json:"status"` // recorded as a label only
	Lines          []ReceivingLine `json:"items" validate:"required,min=1,dive"`
}

type receivingService struct {
	receivingRepo repository.ReceivingRepository
	orderRepo     repository.RestockOrderRepository
	stock         StockService
	db            *gorm.DB
	hub           *ws.Hub
	log           *logrus.Logger
}

func NewReceivingService(
	receivingRepo repository.ReceivingRepository,
	orderRepo repository.RestockOrderRepository,
	stock StockService,
	db *gorm.DB,
	hub *ws.Hub,
	log *logrus.Logger,
) ReceivingService {
	return &receivingService{
		receivingRepo: receivingRepo,
		orderRepo:     orderRepo,
		stock:         stock,
		db:            db,
		hub:           hub,
		log:           log,
	}
}

// RecordReceiving applies a batch of received quantities to an open restock
// order: stock increments, order item counters, the derived order status and
// the audit Receiving row all commit together or not at all. Any over-receipt
// in the batch rejects the whole batch before a single mutation.
func (s *receivingService) RecordReceiving(req *RecordReceivingRequest, receivedBy uuid.UUID, actor string) (*model.Receiving, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}

	var (
		receiving *model.Receiving
		changes   []ws.StockChange
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDTx(tx, req.RestockOrderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("restock order", req.RestockOrderID.String())
		}
		if err != nil {
			return err
		}
		if order.Status == model.StatusCompleted {
			return &apperr.OrderCompletedError{OrderID: order.ID.String()}
		}

		itemsByProduct := make(map[uuid.UUID]*model.OrderItem, len(order.Items))
		for i := range order.Items {
			itemsByProduct[order.Items[i].ProductID] = &order.Items[i]
		}

		// Reject the full batch before touching anything. Duplicate lines
		// for one product are summed so they cannot sneak past the cap.
		// This pass works on the loaded snapshot; the conditional increment
		// below re-checks the cap against the stored row.
		pending := make(map[uuid.UUID]int, len(req.Lines))
		for _, line := range req.Lines {
			item, ok := itemsByProduct[line.ProductID]
			if !ok {
				return apperr.Validation("product %s is not part of restock order %s", line.ProductID, order.ID)
			}
			pending[line.ProductID] += line.QuantityReceived
			if item.QuantityReceived+pending[line.ProductID] > item.QuantityOrdered {
				return &apperr.OverReceiptError{
					ProductID:       line.ProductID.String(),
					AlreadyReceived: item.QuantityReceived,
					Requested:       pending[line.ProductID],
					Ordered:         item.QuantityOrdered,
				}
			}
		}

		// Apply. The increment locks the item row for the rest of the
		// transaction, so the status write below cannot lose an update.
		for productID, qty := range pending {
			item := itemsByProduct[productID]
			rows, err := s.orderRepo.IncrementReceived(tx, item.ID, qty)
			if err != nil {
				return err
			}
			if rows == 0 {
				// A concurrent receiving advanced the counter since the
				// order was loaded; report the stored quantities.
				fresh, err := s.orderRepo.FindItemTx(tx, item.ID)
				if err != nil {
					return err
				}
				return &apperr.OverReceiptError{
					ProductID:       productID.String(),
					AlreadyReceived: fresh.QuantityReceived,
					Requested:       qty,
					Ordered:         fresh.QuantityOrdered,
				}
			}

			product, err := s.stock.ApplyDelta(tx, productID, qty)
			if err != nil {
				return err
			}
			changes = append(changes, ws.StockChange{
				ProductID:   product.ID,
				ProductName: product.Name,
				Delta:       qty,
				NewStock:    product.Stock,
			})

			fresh, err := s.orderRepo.FindItemTx(tx, item.ID)
			if err != nil {
				return err
			}
			*item = *fresh
			item.Status = item.DeriveStatus()
			item.UpdatedBy = actor
			if err := s.orderRepo.SaveItem(tx, item); err != nil {
				return err
			}
		}

		order.Status = order.DeriveStatus()
		if order.Status == model.StatusCompleted && order.ReceivedDate == nil {
			now := time.Now()
			order.ReceivedDate = &now
		}
		order.UpdatedBy = actor
		if err := s.orderRepo.SaveOrder(tx, order); err != nil {
			return err
		}

		// The audit record of this delivery event.
		receivedItems := make([]model.ReceivedItem, 0, len(req.Lines))
		for _, line := range req.Lines {
			receivedItems = append(receivedItems, model.ReceivedItem{
				ProductID:        line.ProductID,
				QuantityReceived: line.QuantityReceived,
			})
		}
		receiving = &model.Receiving{
			RestockOrderID: order.ID,
			ReceivedByID:   receivedBy,
			DateReceived:   time.Now(),
			Status:         req.Status,
			Items:          receivedItems,
		}
		receiving.CreatedBy = actor
		receiving.UpdatedBy = actor
		return s.receivingRepo.Create(tx, receiving)
	})
	if err != nil {
		if apperr.IsDomain(err) {
			return nil, err
		}
		return nil, apperr.Transaction("record receiving", err)
	}

	s.log.WithFields(logrus.Fields{
		"receiving_id":     receiving.ID,
		"restock_order_id": req.RestockOrderID,
		"lines":            len(req.Lines),
		"actor":            actor,
	}).Info("receiving recorded")

	s.hub.Publish(ws.NewStockUpdate(ws.ActionReceivingRecorded, actor, changes...))

	return s.receivingRepo.FindByID(receiving.ID)
}

func (s *receivingService) GetReceiving(id uuid.UUID) (*model.Receiving, error) {
	receiving, err := s.receivingRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("receiving", id.String())
	}
	return receiving, err
}

func (s *receivingService) GetAllReceivings() ([]model.Receiving, error) {
	return s.receivingRepo.FindAll()
}

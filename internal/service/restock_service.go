package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/apperr"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RestockService interface {
	CreateOrder(req *CreateOrderRequest, actor string) (*model.RestockOrder, error)
	UpdateOrder(orderID uuid.UUID, req *UpdateOrderRequest, actor string) (*model.RestockOrder, error)
	DeleteOrder(orderID uuid.UUID) error
	GetOrder(orderID uuid.UUID) (*model.RestockOrder, error)
	GetAllOrders() ([]model.RestockOrder, error)
}

type OrderLine struct {
	ProductID       uuid.UUID `json:"product_id" validate:"uuid_required"`
	QuantityOrdered int       `json:"quantity_ordered" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	SupplierID uuid.UUID   `json:"supplier_id" validate:"uuid_required"`
	Lines      []OrderLine `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest replaces the supplier and/or the full item list.
// Refused once any receiving exists against the order.
type UpdateOrderRequest struct {
	SupplierID *uuid.UUID  `json:"supplier_id"`
	Lines      []OrderLine `json:"items" validate:"omitempty,min=1,dive"`
}

type restockService struct {
	orderRepo     repository.RestockOrderRepository
	receivingRepo repository.ReceivingRepository
	productRepo   repository.ProductRepository
	supplierRepo  repository.SupplierRepository
	db            *gorm.DB
}

func NewRestockService(
	orderRepo repository.RestockOrderRepository,
	receivingRepo repository.ReceivingRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	db *gorm.DB,
) RestockService {
	return &restockService{
		orderRepo:     orderRepo,
		receivingRepo: receivingRepo,
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
		db:            db,
	}
}

// CreateOrder validates every line before anything is written: either the
// whole order is created or nothing is.
func (s *restockService) CreateOrder(req *CreateOrderRequest, actor string) (*model.RestockOrder, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}

	if _, err := s.supplierRepo.FindByID(req.SupplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("supplier", req.SupplierID.String())
		}
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		if _, err := s.productRepo.FindByID(line.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("unknown product %s on order line", line.ProductID)
			}
			return nil, err
		}
		items = append(items, model.OrderItem{
			ProductID:        line.ProductID,
			QuantityOrdered:  line.QuantityOrdered,
			QuantityReceived: 0,
			Status:           model.StatusPending,
		})
	}

	order := &model.RestockOrder{
		SupplierID:  req.SupplierID,
		OrderedDate: time.Now(),
		Status:      model.StatusPending,
		Items:       items,
	}
	order.CreatedBy = actor
	order.UpdatedBy = actor

	if err := s.orderRepo.Create(order); err != nil {
		return nil, apperr.Transaction("create restock order", err)
	}

	return s.orderRepo.FindByID(order.ID)
}

func (s *restockService) UpdateOrder(orderID uuid.UUID, req *UpdateOrderRequest, actor string) (*model.RestockOrder, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}

	order, err := s.orderRepo.FindByID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("restock order", orderID.String())
	}
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoReceivings(orderID); err != nil {
		return nil, err
	}

	if req.SupplierID != nil {
		if _, err := s.supplierRepo.FindByID(*req.SupplierID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("supplier", req.SupplierID.String())
			}
			return nil, err
		}
	}

	var newItems []model.OrderItem
	if req.Lines != nil {
		newItems = make([]model.OrderItem, 0, len(req.Lines))
		for _, line := range req.Lines {
			if _, err := s.productRepo.FindByID(line.ProductID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperr.Validation("unknown product %s on order line", line.ProductID)
				}
				return nil, err
			}
			// The no-receivings guard above means any replacement item set
			// starts from zero received.
			newItems = append(newItems, model.OrderItem{
				ProductID:        line.ProductID,
				QuantityOrdered:  line.QuantityOrdered,
				QuantityReceived: 0,
				Status:           model.StatusPending,
			})
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.SupplierID != nil {
			order.SupplierID = *req.SupplierID
		}
		if newItems != nil {
			if err := s.orderRepo.ReplaceItems(tx, orderID, newItems); err != nil {
				return err
			}
			order.Items = newItems
		}
		order.Status = order.DeriveStatus()
		order.UpdatedBy = actor
		return s.orderRepo.SaveOrder(tx, order)
	})
	if err != nil {
		return nil, apperr.Transaction("update restock order", err)
	}

	return s.orderRepo.FindByID(orderID)
}

func (s *restockService) DeleteOrder(orderID uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("restock order", orderID.String())
		}
		return err
	}
	if err := s.ensureNoReceivings(orderID); err != nil {
		return err
	}
	return s.orderRepo.HardDelete(orderID)
}

func (s *restockService) GetOrder(orderID uuid.UUID) (*model.RestockOrder, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("restock order", orderID.String())
	}
	return order, err
}

func (s *restockService) GetAllOrders() ([]model.RestockOrder, error) {
	return s.orderRepo.FindAll()
}

// Once a receiving exists, stock and the audit trail reference the current
// item set; edits or deletion would desynchronize them.
func (s *restockService) ensureNoReceivings(orderID uuid.UUID) error {
	count, err := s.receivingRepo.CountByOrder(orderID)
	if err != nil {
		return err
	}
	if count > 0 {
		return &apperr.OrderHasReceivingsError{OrderID: orderID.String()}
	}
	return nil
}

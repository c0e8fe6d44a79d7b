package service

import (
	"errors"

	"go-retail-pos/internal/apperr"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(req *model.Product, actor string) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *model.Product, actor string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor string) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

func (s *productService) CreateProduct(req *model.Product, actor string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}
	if err := s.checkReferences(req); err != nil {
		return nil, err
	}

	req.CreatedBy = actor
	req.UpdatedBy = actor
	if err := s.productRepo.Create(req); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(req.ID)
}

// UpdateProduct edits name, price and references. Stock is owned by the
// ledger and is not writable here.
func (s *productService) UpdateProduct(id uuid.UUID, req *model.Product, actor string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product", id.String())
	}
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Price = req.Price
	existing.CategoryID = req.CategoryID
	existing.SupplierID = req.SupplierID
	existing.Category = nil
	existing.Supplier = nil
	existing.UpdatedBy = actor

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, apperr.Validation("field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}
	if err := s.checkReferences(existing); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(id)
}

// DeleteProduct soft-deletes only: sale and order lines keep their product
// references forever.
func (s *productService) DeleteProduct(id uuid.UUID, actor string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("product", id.String())
		}
		return err
	}
	return s.productRepo.SoftDelete(id, actor)
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product", id.String())
	}
	return product, err
}

func (s *productService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) checkReferences(p *model.Product) error {
	if _, err := s.categoryRepo.FindByID(p.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Validation("unknown category %s", p.CategoryID)
		}
		return err
	}
	if _, err := s.supplierRepo.FindByID(p.SupplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Validation("unknown supplier %s", p.SupplierID)
		}
		return err
	}
	return nil
}

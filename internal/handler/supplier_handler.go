package handler

import (
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	repo repository.SupplierRepository
}

func NewSupplierHandler(repo repository.SupplierRepository) *SupplierHandler {
	return &SupplierHandler{repo: repo}
}

func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&supplier); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Supplier name is required"})
	}

	supplier.CreatedBy = getUserName(c)
	supplier.UpdatedBy = supplier.CreatedBy
	if err := h.repo.Create(&supplier); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create supplier"})
	}
	return c.Status(201).JSON(supplier)
}

func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.repo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch suppliers"})
	}
	return c.JSON(suppliers)
}

func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	supplier, err := h.repo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Supplier not found"})
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	existing, err := h.repo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Supplier not found"})
	}

	var patch model.Supplier
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	existing.Name = patch.Name
	existing.ContactPerson = patch.ContactPerson
	existing.Email = patch.Email
	existing.Phone = patch.Phone
	existing.Address = patch.Address
	existing.UpdatedBy = getUserName(c)
	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Supplier name is required"})
	}

	if err := h.repo.Update(existing); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update supplier"})
	}
	return c.JSON(existing)
}

func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	if err := h.repo.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete supplier"})
	}
	return c.JSON(fiber.Map{"message": "Supplier deleted"})
}

package handler

import (
	"time"

	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	employeeID := getUserID(c)
	if employeeID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Missing authenticated user"})
	}

	sale, err := h.service.CreateSale(&req, employeeID, getUserName(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(sale)
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetSale(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.service.DeleteSale(id, getUserName(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale and associated items deleted successfully"})
}

func (h *SaleHandler) GetSalesByDateRange(c *fiber.Ctx) error {
	start, err := time.Parse(time.RFC3339, c.Query("start_date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid or missing start_date"})
	}
	end, err := time.Parse(time.RFC3339, c.Query("end_date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid or missing end_date"})
	}

	sales, err := h.service.GetSalesByDateRange(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetDailySalesReport(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, want YYYY-MM-DD"})
		}
		date = parsed
	}

	sales, err := h.service.GetDailySalesReport(date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

package handler

import (
	"strconv"
	"time"

	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	start, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid or missing start_date, want YYYY-MM-DD"})
	}
	end, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid or missing end_date, want YYYY-MM-DD"})
	}
	// Include the whole end day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	report, err := h.service.GetSalesReport(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetTopSellingProducts(c *fiber.Ctx) error {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid limit"})
		}
		limit = v
	}

	products, err := h.service.GetTopSellingProducts(limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *ReportHandler) GetLowStockProducts(c *fiber.Ctx) error {
	products, err := h.service.GetLowStockProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

package handler

import (
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RestockHandler struct {
	service service.RestockService
	stock   service.StockService
}

func NewRestockHandler(s service.RestockService, stock service.StockService) *RestockHandler {
	return &RestockHandler{service: s, stock: stock}
}

func (h *RestockHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.CreateOrder(&req, getUserName(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(order)
}

func (h *RestockHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *RestockHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.GetOrder(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func (h *RestockHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req service.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.UpdateOrder(id, &req, getUserName(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func (h *RestockHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	if err := h.service.DeleteOrder(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Restock order deleted"})
}

func (h *RestockHandler) GetSuggestions(c *fiber.Ctx) error {
	suggestions, err := h.stock.SuggestRestockItems()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suggestions)
}

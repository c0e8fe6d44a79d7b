package handler

import (
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReceivingHandler struct {
	service service.ReceivingService
}

func NewReceivingHandler(s service.ReceivingService) *ReceivingHandler {
	return &ReceivingHandler{service: s}
}

// CreateReceiving records a delivery against a restock order. The received-by
// identity comes from the authenticated user, never from the body.
func (h *ReceivingHandler) CreateReceiving(c *fiber.Ctx) error {
	var req service.RecordReceivingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	receivedBy := getUserID(c)
	if receivedBy == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Missing authenticated user"})
	}

	receiving, err := h.service.RecordReceiving(&req, receivedBy, getUserName(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(receiving)
}

func (h *ReceivingHandler) GetReceivings(c *fiber.Ctx) error {
	receivings, err := h.service.GetAllReceivings()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receivings)
}

func (h *ReceivingHandler) GetReceiving(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid receiving ID"})
	}

	receiving, err := h.service.GetReceiving(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receiving)
}

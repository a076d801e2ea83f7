package handler

import (
	"shop-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	service service.CustomerService
}

func NewCustomerHandler(s service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

// GET /api/v1/customers/:phone
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.service.Lookup(c.UserContext(), c.Params("phone"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// GetReceipt returns the stored bill as plain text
// GET /api/v1/receipts/:bill_no
func (h *CustomerHandler) GetReceipt(c *fiber.Ctx) error {
	text, err := h.service.Receipt(c.UserContext(), c.Params("bill_no"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(text)
}

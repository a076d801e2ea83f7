package handler

import (
	"shop-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RegisterHandler struct {
	catalog  service.CatalogService
	register service.RegisterService
}

func NewRegisterHandler(catalog service.CatalogService, register service.RegisterService) *RegisterHandler {
	return &RegisterHandler{catalog: catalog, register: register}
}

// GetProducts lists the catalog
// GET /api/v1/products
func (h *RegisterHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// AddToCart
// POST /api/v1/cart/items
func (h *RegisterHandler) AddToCart(c *fiber.Ctx) error {
	var req service.AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}

	cart, err := h.register.AddToCart(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// GET /api/v1/cart
func (h *RegisterHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(h.register.ViewCart())
}

// DELETE /api/v1/cart
func (h *RegisterHandler) ClearCart(c *fiber.Ctx) error {
	return c.JSON(h.register.ClearCart())
}

// Quote previews the bill and tells whether points can be redeemed
// POST /api/v1/checkout/quote
func (h *RegisterHandler) Quote(c *fiber.Ctx) error {
	var req service.CustomerInfo
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}

	quote, err := h.register.Quote(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}

// Checkout
// POST /api/v1/checkout
func (h *RegisterHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}

	receipt, err := h.register.Checkout(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Sale completed", "data": receipt})
}

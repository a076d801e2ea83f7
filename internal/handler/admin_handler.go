package handler

import (
	"shop-billing/internal/middleware"
	"shop-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	admin   service.AdminService
	catalog service.CatalogService
}

func NewAdminHandler(admin service.AdminService, catalog service.CatalogService) *AdminHandler {
	return &AdminHandler{admin: admin, catalog: catalog}
}

type UnlockRequest struct {
	Pin string `json:"pin"`
}

// Unlock exchanges the admin PIN for a session token
// POST /api/v1/admin/unlock
func (h *AdminHandler) Unlock(c *fiber.Ctx) error {
	var req UnlockRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}

	resp, err := h.admin.Unlock(c.UserContext(), req.Pin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetInventory is the admin view of the catalog, behind RequireAdmin
// GET /api/v1/admin/inventory
func (h *AdminHandler) GetInventory(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// UpsertProduct accepts either a session token or the PIN in the body
// PUT /api/v1/admin/products
func (h *AdminHandler) UpsertProduct(c *fiber.Ctx) error {
	var req service.UpsertProductRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}

	var (
		product interface{}
		err     error
	)
	if token := middleware.BearerToken(c); token != "" {
		product, err = h.admin.UpsertProductWithSession(c.UserContext(), token, req)
	} else {
		product, err = h.admin.UpsertProduct(c.UserContext(), req.Pin, req)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product saved", "data": product})
}

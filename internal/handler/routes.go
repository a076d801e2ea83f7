package handler

import (
	"shop-billing/internal/middleware"
	"shop-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles every HTTP handler of the API.
type Handlers struct {
	Register *RegisterHandler
	Admin    *AdminHandler
	Report   *ReportHandler
	Customer *CustomerHandler
}

// NewHandlers wires handlers onto the services.
func NewHandlers(catalog service.CatalogService, register service.RegisterService, admin service.AdminService, report service.ReportService, customer service.CustomerService) *Handlers {
	return &Handlers{
		Register: NewRegisterHandler(catalog, register),
		Admin:    NewAdminHandler(admin, catalog),
		Report:   NewReportHandler(report),
		Customer: NewCustomerHandler(customer),
	}
}

// Routes mounts the API under api. Admin routes that need a session are
// guarded by sessions.
func (h *Handlers) Routes(api fiber.Router, sessions middleware.SessionValidator) {
	api.Get("/products", h.Register.GetProducts)

	cart := api.Group("/cart")
	cart.Get("", h.Register.GetCart)
	cart.Post("/items", h.Register.AddToCart)
	cart.Delete("", h.Register.ClearCart)

	api.Post("/checkout/quote", h.Register.Quote)
	api.Post("/checkout", h.Register.Checkout)

	admin := api.Group("/admin")
	admin.Post("/unlock", h.Admin.Unlock)
	admin.Get("/inventory", middleware.RequireAdmin(sessions), h.Admin.GetInventory)
	admin.Put("/products", h.Admin.UpsertProduct)

	api.Get("/reports/total", h.Report.GetTotalSales)
	api.Get("/reports/today", h.Report.GetTodaySales)

	api.Get("/customers/:phone", h.Customer.GetCustomer)
	api.Get("/receipts/:bill_no", h.Customer.GetReceipt)
}

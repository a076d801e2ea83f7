package handler

import (
	"shop-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GET /api/v1/reports/total
func (h *ReportHandler) GetTotalSales(c *fiber.Ctx) error {
	summary, err := h.service.TotalSales(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GET /api/v1/reports/today
func (h *ReportHandler) GetTodaySales(c *fiber.Ctx) error {
	summary, err := h.service.TodaySales(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

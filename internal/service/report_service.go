package service

import (
	"context"
	"strings"
	"time"

	"shop-billing/internal/model"
	"shop-billing/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService interface {
	TotalSales(ctx context.Context) (*model.SalesSummary, error)
	TodaySales(ctx context.Context) (*model.SalesSummary, error)
}

type reportService struct {
	ledgerRepo repository.LedgerRepository
	now        func() time.Time
}

func NewReportService(ledgerRepo repository.LedgerRepository, now func() time.Time) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{ledgerRepo: ledgerRepo, now: now}
}

// TotalSales reports the ledger's running total.
func TotalSales(ledger *model.Ledger) model.SalesSummary {
	return model.SalesSummary{Total: ledger.TotalSales, BillCount: len(ledger.Sales)}
}

// TodaySales sums the sales whose date contains today's YYYY-MM-DD.
func TodaySales(ledger *model.Ledger, today time.Time) model.SalesSummary {
	day := today.Format(model.DateLayout)
	summary := model.SalesSummary{Total: decimal.Zero}
	for _, s := range ledger.Sales {
		if strings.Contains(s.Date, day) {
			summary.Total = summary.Total.Add(s.Amount)
			summary.BillCount++
		}
	}
	return summary
}

func (s *reportService) TotalSales(ctx context.Context) (*model.SalesSummary, error) {
	ledger, err := s.ledgerRepo.Load(ctx)
	if err != nil {
		return nil, persistErr("load ledger", err)
	}
	summary := TotalSales(ledger)
	return &summary, nil
}

func (s *reportService) TodaySales(ctx context.Context) (*model.SalesSummary, error) {
	ledger, err := s.ledgerRepo.Load(ctx)
	if err != nil {
		return nil, persistErr("load ledger", err)
	}
	summary := TodaySales(ledger, s.now())
	return &summary, nil
}

package service

import (
	"context"
	"sort"

	"shop-billing/internal/repository"

	"github.com/shopspring/decimal"
)

// LedgerCheck is the outcome of RepairLedger.
type LedgerCheck struct {
	Sales    int             `json:"sales"`
	Recorded decimal.Decimal `json:"recorded"`
	Computed decimal.Decimal `json:"computed"`
	Repaired bool            `json:"repaired"`
}

// Consistent reports whether the recorded total matched the sales.
func (c LedgerCheck) Consistent() bool {
	return c.Recorded.Equal(c.Computed)
}

// RepairLedger recomputes the ledger's running total from its sales and,
// unless dryRun is set, saves the corrected total when it drifted.
func RepairLedger(ctx context.Context, ledgerRepo repository.LedgerRepository, dryRun bool) (*LedgerCheck, error) {
	ledger, err := ledgerRepo.Load(ctx)
	if err != nil {
		return nil, persistErr("load ledger", err)
	}

	check := &LedgerCheck{
		Sales:    len(ledger.Sales),
		Recorded: ledger.TotalSales,
		Computed: ledger.Sum(),
	}
	if check.Consistent() || dryRun {
		return check, nil
	}

	ledger.TotalSales = check.Computed
	if err := ledgerRepo.Save(ctx, ledger); err != nil {
		return nil, persistErr("save ledger", err)
	}
	check.Repaired = true
	return check, nil
}

// PruneReceipts removes receipts whose bill is not in the ledger. Such files
// are left behind when the process dies between writing a receipt and
// committing its sale. With dryRun set the orphans are only reported.
func PruneReceipts(ctx context.Context, ledgerRepo repository.LedgerRepository, receipts repository.ReceiptRepository, dryRun bool) ([]string, error) {
	ledger, err := ledgerRepo.Load(ctx)
	if err != nil {
		return nil, persistErr("load ledger", err)
	}
	bills, err := receipts.List(ctx)
	if err != nil {
		return nil, persistErr("list receipts", err)
	}

	recorded := make(map[string]bool, len(ledger.Sales))
	for _, s := range ledger.Sales {
		recorded[s.BillNo] = true
	}

	var orphans []string
	for _, bill := range bills {
		if !recorded[bill] {
			orphans = append(orphans, bill)
		}
	}
	sort.Strings(orphans)
	if dryRun {
		return orphans, nil
	}

	for _, bill := range orphans {
		if err := receipts.Delete(ctx, bill); err != nil {
			return nil, persistErr("remove receipt "+bill, err)
		}
	}
	return orphans, nil
}

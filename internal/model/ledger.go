package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BillPrefix precedes the sequence number of every bill.
const BillPrefix = "SB"

// SaleRecord is an immutable entry of a completed sale. A copy lives in the
// ledger and another in the buying customer's history.
type SaleRecord struct {
	BillNo string          `json:"bill_no"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Ledger is the append-only list of sales. TotalSales always equals the sum
// of the amounts in Sales.
type Ledger struct {
	Sales      []SaleRecord    `json:"sales"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Sales: []SaleRecord{}, TotalSales: decimal.Zero}
}

// NextBillNo derives the number the next appended sale will get.
func (l *Ledger) NextBillNo() string {
	return fmt.Sprintf("%s%d", BillPrefix, len(l.Sales)+1)
}

// Append records a sale and keeps the running total in step.
func (l *Ledger) Append(rec SaleRecord) {
	l.Sales = append(l.Sales, rec)
	l.TotalSales = l.TotalSales.Add(rec.Amount)
}

// Sum recomputes the total from the individual sales.
func (l *Ledger) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, s := range l.Sales {
		total = total.Add(s.Amount)
	}
	return total
}

// Consistent reports whether TotalSales matches the recorded sales.
func (l *Ledger) Consistent() bool {
	return l.TotalSales.Equal(l.Sum())
}

package service

import (
	"fmt"
	"strings"

	"shop-billing/internal/model"

	"github.com/shopspring/decimal"
)

const currency = "₹"

func money(d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}

// RenderReceipt produces the text persisted as Bill_<bill_no>.txt: header,
// item lines, subtotal, GST, discount when one was given, total, then the
// resulting points and tier.
func RenderReceipt(r *model.Receipt) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Bill No: %s\n", r.BillNo)
	fmt.Fprintf(&b, "Date: %s\n", r.Date)
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%s x%d = %s\n", l.Name, l.Quantity, money(l.LineTotal))
	}
	fmt.Fprintf(&b, "Subtotal: %s\n", money(r.Subtotal))
	fmt.Fprintf(&b, "GST: %s\n", money(r.GST))
	if r.Discount.IsPositive() {
		fmt.Fprintf(&b, "Discount: %s\n", money(r.Discount))
	}
	fmt.Fprintf(&b, "Total: %s\n", money(r.GrandTotal))
	fmt.Fprintf(&b, "Points: %d (%s)", r.Points, r.Tier)

	return b.String()
}

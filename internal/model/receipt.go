package model

import "github.com/shopspring/decimal"

type ReceiptLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Receipt is the document emitted by a completed checkout.
type Receipt struct {
	BillNo         string          `json:"bill_no"`
	Date           string          `json:"date"`
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone"`
	Lines          []ReceiptLine   `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	GST            decimal.Decimal `json:"gst"`
	Discount       decimal.Decimal `json:"discount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	PointsRedeemed int             `json:"points_redeemed"`
	PointsEarned   int             `json:"points_earned"`
	Points         int             `json:"points"`
	Tier           Tier            `json:"tier"`
}

// SalesSummary is the result of both sales reports.
type SalesSummary struct {
	Total     decimal.Decimal `json:"total"`
	BillCount int             `json:"bill_count"`
}

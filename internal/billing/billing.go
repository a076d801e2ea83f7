// Package billing holds the pure money and loyalty rules of a sale: tax,
// point redemption, point earning and tiers.
package billing

import (
	"errors"

	"shop-billing/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// RedemptionCost is the number of points spent on one discount.
	RedemptionCost = 10
	// PointValue is the amount of grand total that earns one point.
	PointValue = 100
	// MoneyPlaces is the number of decimal places money is rounded to.
	MoneyPlaces = 2
)

var (
	// GSTRate is the fixed goods and services tax applied to the subtotal.
	GSTRate = decimal.RequireFromString("0.05")
	// RedemptionRate is the discount granted on the tax-inclusive amount.
	RedemptionRate = decimal.RequireFromString("0.10")
)

var ErrInsufficientPoints = errors.New("at least 10 loyalty points are needed to redeem a discount")

// Totals is the priced outcome of a sale for one customer.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	GST            decimal.Decimal `json:"gst"`
	Discount       decimal.Decimal `json:"discount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	PointsBefore   int             `json:"points_before"`
	PointsRedeemed int             `json:"points_redeemed"`
	PointsEarned   int             `json:"points_earned"`
	PointsAfter    int             `json:"points_after"`
	Tier           model.Tier      `json:"tier"`
}

// GST returns the tax on subtotal.
func GST(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(GSTRate).Round(MoneyPlaces)
}

// CanRedeem reports whether a balance is large enough for a discount.
func CanRedeem(points int) bool {
	return points >= RedemptionCost
}

// PointsEarned is one point per full PointValue of the grand total.
func PointsEarned(grandTotal decimal.Decimal) int {
	if grandTotal.IsNegative() {
		return 0
	}
	return int(grandTotal.Div(decimal.NewFromInt(PointValue)).Floor().IntPart())
}

// Compute prices a sale. Redemption is applied before points are earned, so
// the earned points are based on the discounted total.
func Compute(subtotal decimal.Decimal, points int, redeem bool) (Totals, error) {
	if redeem && !CanRedeem(points) {
		return Totals{}, ErrInsufficientPoints
	}

	gst := GST(subtotal)
	gross := subtotal.Add(gst)

	t := Totals{
		Subtotal:     subtotal,
		GST:          gst,
		Discount:     decimal.Zero,
		GrandTotal:   gross,
		PointsBefore: points,
	}

	balance := points
	if redeem {
		t.Discount = gross.Mul(RedemptionRate).Round(MoneyPlaces)
		t.GrandTotal = gross.Sub(t.Discount)
		t.PointsRedeemed = RedemptionCost
		balance -= RedemptionCost
	}

	t.PointsEarned = PointsEarned(t.GrandTotal)
	t.PointsAfter = balance + t.PointsEarned
	t.Tier = model.TierFor(t.PointsAfter)
	return t, nil
}

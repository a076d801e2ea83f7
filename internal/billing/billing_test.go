package billing

import (
	"testing"

	"shop-billing/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute_NoRedemption(t *testing.T) {
	// Helmet x2 @1200 + Gloves x1 @500
	totals, err := Compute(dec("2900"), 0, false)
	require.NoError(t, err)

	assert.True(t, dec("145.00").Equal(totals.GST), "gst %s", totals.GST)
	assert.True(t, dec("3045.00").Equal(totals.GrandTotal), "grand %s", totals.GrandTotal)
	assert.True(t, totals.Discount.IsZero())
	assert.Equal(t, 30, totals.PointsEarned)
	assert.Equal(t, 30, totals.PointsAfter)
	assert.Equal(t, model.TierSilver, totals.Tier)
}

func TestCompute_WithRedemption(t *testing.T) {
	// subtotal 1000 -> gross 1050
	totals, err := Compute(dec("1000"), 12, true)
	require.NoError(t, err)

	assert.True(t, dec("105.00").Equal(totals.Discount), "discount %s", totals.Discount)
	assert.True(t, dec("945.00").Equal(totals.GrandTotal), "grand %s", totals.GrandTotal)
	assert.Equal(t, 10, totals.PointsRedeemed)
	assert.Equal(t, 9, totals.PointsEarned)
	assert.Equal(t, 11, totals.PointsAfter)
	assert.Equal(t, model.TierBronze, totals.Tier)
}

func TestCompute_RedemptionNeedsTenPoints(t *testing.T) {
	_, err := Compute(dec("1000"), 9, true)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestCompute_DecliningRedemptionKeepsPoints(t *testing.T) {
	totals, err := Compute(dec("1000"), 12, false)
	require.NoError(t, err)

	assert.True(t, totals.Discount.IsZero())
	assert.Equal(t, 0, totals.PointsRedeemed)
	assert.Equal(t, 12+10, totals.PointsAfter)
}

func TestCompute_PointsFormula(t *testing.T) {
	tests := []struct {
		subtotal string
		points   int
		redeem   bool
	}{
		{"0", 0, false},
		{"95.24", 3, false},
		{"190.48", 10, true},
		{"12345.67", 48, true},
		{"99", 24, false},
	}
	for _, tt := range tests {
		totals, err := Compute(dec(tt.subtotal), tt.points, tt.redeem)
		require.NoError(t, err)

		redeemed := 0
		if tt.redeem {
			redeemed = RedemptionCost
		}
		want := tt.points - redeemed + int(totals.GrandTotal.Div(decimal.NewFromInt(100)).Floor().IntPart())
		assert.Equal(t, want, totals.PointsAfter, "subtotal %s", tt.subtotal)
		assert.True(t, totals.GrandTotal.Equal(totals.Subtotal.Add(totals.GST).Sub(totals.Discount)))
	}
}

func TestGST_RoundsToCents(t *testing.T) {
	assert.Equal(t, "0.62", GST(dec("12.34")).StringFixed(2))
	assert.Equal(t, "16.65", GST(dec("333")).StringFixed(2))
}

func TestPointsEarned_FloorsPartialHundreds(t *testing.T) {
	assert.Equal(t, 0, PointsEarned(dec("99.99")))
	assert.Equal(t, 1, PointsEarned(dec("100")))
	assert.Equal(t, 9, PointsEarned(dec("945")))
	assert.Equal(t, 0, PointsEarned(dec("-5")))
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		points int
		want   model.Tier
	}{
		{0, model.TierBronze},
		{24, model.TierBronze},
		{25, model.TierSilver},
		{49, model.TierSilver},
		{50, model.TierGold},
		{500, model.TierGold},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, model.TierFor(tt.points), "points %d", tt.points)
	}
}

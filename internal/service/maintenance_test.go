package service

import (
	"context"
	"testing"

	"shop-billing/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairLedger(t *testing.T) {
	store, err := repository.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	ledger := sampleLedger()
	ledger.TotalSales = price("99")
	require.NoError(t, store.Ledger().Save(ctx, ledger))

	check, err := RepairLedger(ctx, store.Ledger(), true)
	require.NoError(t, err)
	assert.False(t, check.Consistent())
	assert.False(t, check.Repaired)

	check, err = RepairLedger(ctx, store.Ledger(), false)
	require.NoError(t, err)
	assert.True(t, check.Repaired)
	assert.True(t, check.Computed.Equal(price("1305.50")))

	saved, err := store.Ledger().Load(ctx)
	require.NoError(t, err)
	assert.True(t, saved.Consistent())

	check, err = RepairLedger(ctx, store.Ledger(), false)
	require.NoError(t, err)
	assert.True(t, check.Consistent())
	assert.False(t, check.Repaired)
}

func TestPruneReceipts_RemovesBillsMissingFromLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.add(t, "Gloves", 1)
	_, err := f.register.Checkout(ctx, CheckoutRequest{CustomerInfo: CustomerInfo{Name: "Asha", Phone: "1"}})
	require.NoError(t, err)

	// receipt written, then the process died before the sale was committed
	require.NoError(t, f.receipts.Save(ctx, "SB2", "Bill No: SB2"))

	orphans, err := PruneReceipts(ctx, f.store.Ledger(), f.receipts, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"SB2"}, orphans)
	_, err = f.receipts.Find(ctx, "SB2")
	require.NoError(t, err)

	orphans, err = PruneReceipts(ctx, f.store.Ledger(), f.receipts, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"SB2"}, orphans)

	_, err = f.receipts.Find(ctx, "SB2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.receipts.Find(ctx, "SB1")
	assert.NoError(t, err)

	orphans, err = PruneReceipts(ctx, f.store.Ledger(), f.receipts, false)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

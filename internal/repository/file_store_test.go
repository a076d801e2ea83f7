package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shop-billing/internal/model"
	"shop-billing/pkg/snapshot"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	return s, dir
}

func sampleCommit() *SaleCommit {
	rec := model.SaleRecord{BillNo: "SB1", Date: "2026-10-16 10:00:00", Amount: decimal.RequireFromString("3045")}
	ledger := model.NewLedger()
	ledger.Append(rec)
	return &SaleCommit{
		Catalog: model.Catalog{
			"Helmet": {Name: "Helmet", Price: decimal.NewFromInt(1200), Stock: 13},
		},
		Customers: model.Customers{
			"9000": {Phone: "9000", Name: "Asha", Points: 30, History: []model.SaleRecord{rec}},
		},
		Ledger: ledger,
	}
}

func TestFileStore_LoadEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	catalog, err := s.Catalog().Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, catalog)

	customers, err := s.Customers().Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)

	ledger, err := s.Ledger().Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger.Sales)
	assert.True(t, ledger.TotalSales.IsZero())
}

func TestFileStore_CommitSaleRoundTrip(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CommitSale(ctx, sampleCommit()))
	assert.False(t, snapshot.Exists(filepath.Join(dir, JournalFile)))

	catalog, err := s.Catalog().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 13, catalog["Helmet"].Stock)
	assert.Equal(t, "Helmet", catalog["Helmet"].Name)

	customers, err := s.Customers().Load(ctx)
	require.NoError(t, err)
	require.Contains(t, customers, "9000")
	assert.Equal(t, "9000", customers["9000"].Phone)
	assert.Equal(t, 30, customers["9000"].Points)
	require.Len(t, customers["9000"].History, 1)

	ledger, err := s.Ledger().Load(ctx)
	require.NoError(t, err)
	require.Len(t, ledger.Sales, 1)
	assert.Equal(t, "SB1", ledger.Sales[0].BillNo)
	assert.True(t, ledger.Consistent())
}

func TestFileStore_WritesLegacyFileLayout(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, s.CommitSale(context.Background(), sampleCommit()))

	data, err := os.ReadFile(filepath.Join(dir, CatalogFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Helmet": {"price": 1200, "stock": 13}}`, string(data))

	data, err = os.ReadFile(filepath.Join(dir, LedgerFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"sales": [{"bill_no": "SB1", "date": "2026-10-16 10:00:00", "amount": 3045}], "total_sales": 3045}`, string(data))
}

func TestFileStore_FailedCommitRestoresPreviousFiles(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	previous := model.Catalog{"Helmet": {Name: "Helmet", Price: decimal.NewFromInt(1200), Stock: 15}}
	require.NoError(t, s.Catalog().Save(ctx, previous))

	boom := errors.New("disk full")
	s.write = func(path string, v interface{}) error {
		if filepath.Base(path) == LedgerFile {
			return boom
		}
		return snapshot.Write(path, v)
	}

	err := s.CommitSale(ctx, sampleCommit())
	require.ErrorIs(t, err, boom)

	s.write = snapshot.Write
	catalog, err := s.Catalog().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, catalog["Helmet"].Stock)

	// customers.json did not exist before the commit and must be gone again
	assert.False(t, snapshot.Exists(filepath.Join(dir, CustomersFile)))
	assert.False(t, snapshot.Exists(filepath.Join(dir, LedgerFile)))
	assert.False(t, snapshot.Exists(filepath.Join(dir, JournalFile)))
}

func TestFileStore_JournalWriteFailureChangesNothing(t *testing.T) {
	s, dir := newTestStore(t)

	s.write = func(path string, v interface{}) error {
		return errors.New("read-only")
	}
	require.Error(t, s.CommitSale(context.Background(), sampleCommit()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_OpenRollsBackInterruptedCommit(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Catalog().Save(ctx, model.Catalog{
		"Helmet": {Name: "Helmet", Price: decimal.NewFromInt(1200), Stock: 15},
	}))

	// Simulate a crash right after the catalog was replaced.
	s.write = func(path string, v interface{}) error {
		if filepath.Base(path) == CustomersFile {
			panic("crash")
		}
		return snapshot.Write(path, v)
	}
	assert.Panics(t, func() { _ = s.CommitSale(ctx, sampleCommit()) })
	require.True(t, snapshot.Exists(filepath.Join(dir, JournalFile)))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	assert.True(t, reopened.RolledBack())

	catalog, err := reopened.Catalog().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, catalog["Helmet"].Stock)
	assert.False(t, snapshot.Exists(filepath.Join(dir, JournalFile)))
}

func TestFileStore_CancelledContext(t *testing.T) {
	s, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.CommitSale(ctx, sampleCommit()), context.Canceled)
}

func TestFileStore_ReadsLegacyIntegerPrices(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, CatalogFile),
		[]byte(`{"Tyre": {"price": 1800, "stock": 10}, "Chain Oil": {"price": 249.5, "stock": 20}}`), 0o644))

	catalog, err := s.Catalog().Load(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1800).Equal(catalog["Tyre"].Price))
	assert.Equal(t, "249.50", catalog["Chain Oil"].Price.StringFixed(2))
}

func TestReceiptRepo(t *testing.T) {
	dir := t.TempDir()
	repo := NewReceiptRepo(dir)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "SB1", "Bill No: SB1\n"))
	assert.True(t, snapshot.Exists(filepath.Join(dir, "Bill_SB1.txt")))

	text, err := repo.Find(ctx, "SB1")
	require.NoError(t, err)
	assert.Equal(t, "Bill No: SB1\n", text)

	require.NoError(t, repo.Delete(ctx, "SB1"))
	_, err = repo.Find(ctx, "SB1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Find(ctx, "../sales")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReceiptRepo_List(t *testing.T) {
	dir := t.TempDir()
	repo := NewReceiptRepo(filepath.Join(dir, "receipts"))
	ctx := context.Background()

	bills, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)

	require.NoError(t, repo.Save(ctx, "SB1", "one"))
	require.NoError(t, repo.Save(ctx, "SB2", "two"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "receipts", "notes.txt"), []byte("x"), 0o644))

	bills, err = repo.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"SB1", "SB2"}, bills)
}

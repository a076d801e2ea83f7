package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"shop-billing/internal/model"
	"shop-billing/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type published struct {
	Type    string
	Payload interface{}
}

type recorder struct {
	mu     sync.Mutex
	events []published
}

func (r *recorder) Publish(eventType string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{Type: eventType, Payload: payload})
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// failingStore wraps a store and fails every CommitSale.
type failingStore struct {
	repository.Store
}

var errDiskFull = errors.New("disk full")

func (failingStore) CommitSale(context.Context, *repository.SaleCommit) error {
	return errDiskFull
}

type fixture struct {
	store    *repository.FileStore
	receipts repository.ReceiptRepository
	notifier *recorder
	checkout CheckoutService
	register RegisterService
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog() model.Catalog {
	return model.Catalog{
		"Helmet": {Name: "Helmet", Price: price("1200"), Stock: 5},
		"Gloves": {Name: "Gloves", Price: price("500"), Stock: 10},
		"Mirror": {Name: "Mirror", Price: price("1000"), Stock: 2},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	store, err := repository.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Catalog().Save(context.Background(), testCatalog()))

	f := &fixture{
		store:    store,
		receipts: repository.NewReceiptRepo(filepath.Join(dir, "receipts")),
		notifier: &recorder{},
	}
	f.checkout = NewCheckoutService(store, f.receipts, f.notifier, zap.NewNop(), clock)
	f.register = NewRegisterService(store.Catalog(), f.checkout, &sync.Mutex{}, zap.NewNop())
	return f
}

func (f *fixture) catalog(t *testing.T) model.Catalog {
	t.Helper()
	c, err := f.store.Catalog().Load(context.Background())
	require.NoError(t, err)
	return c
}

func (f *fixture) customers(t *testing.T) model.Customers {
	t.Helper()
	c, err := f.store.Customers().Load(context.Background())
	require.NoError(t, err)
	return c
}

func (f *fixture) ledger(t *testing.T) *model.Ledger {
	t.Helper()
	l, err := f.store.Ledger().Load(context.Background())
	require.NoError(t, err)
	return l
}

func (f *fixture) add(t *testing.T, product string, qty int) {
	t.Helper()
	_, err := f.register.AddToCart(context.Background(), AddToCartRequest{Product: product, Quantity: qty})
	require.NoError(t, err)
}

func (f *fixture) seedCustomer(t *testing.T, phone, name string, points int) {
	t.Helper()
	customers := f.customers(t)
	customers[phone] = model.Customer{Phone: phone, Name: name, Points: points, History: []model.SaleRecord{}}
	require.NoError(t, f.store.Customers().Save(context.Background(), customers))
}

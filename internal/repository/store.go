package repository

import (
	"context"
	"errors"

	"shop-billing/internal/model"
)

var ErrNotFound = errors.New("record not found")

type CatalogRepository interface {
	Load(ctx context.Context) (model.Catalog, error)
	Save(ctx context.Context, catalog model.Catalog) error
}

type CustomerRepository interface {
	Load(ctx context.Context) (model.Customers, error)
	Save(ctx context.Context, customers model.Customers) error
}

type LedgerRepository interface {
	Load(ctx context.Context) (*model.Ledger, error)
	Save(ctx context.Context, ledger *model.Ledger) error
}

type ReceiptRepository interface {
	Save(ctx context.Context, billNo, text string) error
	Find(ctx context.Context, billNo string) (string, error)
	Delete(ctx context.Context, billNo string) error
	// List returns the bill numbers of every stored receipt.
	List(ctx context.Context) ([]string, error)
}

// SaleCommit carries the three snapshots a checkout writes together.
type SaleCommit struct {
	Catalog   model.Catalog
	Customers model.Customers
	Ledger    *model.Ledger
}

// Store groups the three persisted datasets. CommitSale must leave either all
// three updated or none of them.
type Store interface {
	Catalog() CatalogRepository
	Customers() CustomerRepository
	Ledger() LedgerRepository
	CommitSale(ctx context.Context, commit *SaleCommit) error
}

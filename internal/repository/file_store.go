package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"shop-billing/internal/model"
	"shop-billing/pkg/snapshot"

	"github.com/shopspring/decimal"
)

// Snapshot file names inside the data directory.
const (
	CatalogFile   = "inventory.json"
	CustomersFile = "customers.json"
	LedgerFile    = "sales.json"
	JournalFile   = "journal.json"
)

type productEntry struct {
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type customerEntry struct {
	Name    string             `json:"name"`
	Points  int                `json:"points"`
	History []model.SaleRecord `json:"history"`
}

// undoJournal keeps the previous bytes of every file a commit touches.
// Files listed in Absent did not exist before the commit.
type undoJournal struct {
	Previous map[string][]byte `json:"previous"`
	Absent   []string          `json:"absent"`
}

// FileStore keeps each dataset in its own JSON file and uses an undo journal
// to make CommitSale all-or-nothing.
type FileStore struct {
	dir        string
	rolledBack bool

	// write is swapped in tests to inject failures.
	write func(path string, v interface{}) error
}

// NewFileStore opens the data directory, creating it if needed, and rolls
// back any commit interrupted by a crash.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &FileStore{dir: dir, write: snapshot.Write}

	rolledBack, err := s.Recover()
	if err != nil {
		return nil, err
	}
	s.rolledBack = rolledBack
	return s, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// RolledBack reports whether opening the store undid an interrupted commit.
func (s *FileStore) RolledBack() bool {
	return s.rolledBack
}

func (s *FileStore) Catalog() CatalogRepository    { return &fileCatalogRepo{s} }
func (s *FileStore) Customers() CustomerRepository { return &fileCustomerRepo{s} }
func (s *FileStore) Ledger() LedgerRepository      { return &fileLedgerRepo{s} }

// CommitSale writes the undo journal, then the catalog, customers and ledger
// in that order, then drops the journal. Any failure restores the previous
// files before returning.
func (s *FileStore) CommitSale(ctx context.Context, commit *SaleCommit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	names := []string{CatalogFile, CustomersFile, LedgerFile}
	journal := undoJournal{Previous: map[string][]byte{}}
	for _, name := range names {
		data, err := os.ReadFile(s.path(name))
		switch {
		case errors.Is(err, os.ErrNotExist):
			journal.Absent = append(journal.Absent, name)
		case err != nil:
			return err
		default:
			journal.Previous[name] = data
		}
	}

	if err := s.write(s.path(JournalFile), journal); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}

	writes := []struct {
		name string
		v    interface{}
	}{
		{CatalogFile, toCatalogFile(commit.Catalog)},
		{CustomersFile, toCustomersFile(commit.Customers)},
		{LedgerFile, normalizeLedger(commit.Ledger)},
	}
	for _, w := range writes {
		if err := s.write(s.path(w.name), w.v); err != nil {
			if rbErr := s.rollback(&journal); rbErr != nil {
				return errors.Join(fmt.Errorf("write %s: %w", w.name, err), fmt.Errorf("rollback: %w", rbErr))
			}
			return fmt.Errorf("write %s: %w", w.name, err)
		}
	}

	if err := snapshot.Remove(s.path(JournalFile)); err != nil {
		if rbErr := s.rollback(&journal); rbErr != nil {
			return errors.Join(fmt.Errorf("remove journal: %w", err), fmt.Errorf("rollback: %w", rbErr))
		}
		return fmt.Errorf("remove journal: %w", err)
	}
	return nil
}

// Recover undoes a commit whose journal is still on disk.
func (s *FileStore) Recover() (bool, error) {
	var journal undoJournal
	err := snapshot.Read(s.path(JournalFile), &journal)
	if errors.Is(err, snapshot.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read journal: %w", err)
	}
	if err := s.rollback(&journal); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) rollback(journal *undoJournal) error {
	for name, data := range journal.Previous {
		if err := snapshot.WriteFile(s.path(name), data); err != nil {
			return err
		}
	}
	for _, name := range journal.Absent {
		if err := snapshot.Remove(s.path(name)); err != nil {
			return err
		}
	}
	return snapshot.Remove(s.path(JournalFile))
}

func toCatalogFile(catalog model.Catalog) map[string]productEntry {
	out := make(map[string]productEntry, len(catalog))
	for name, p := range catalog {
		out[name] = productEntry{Price: p.Price, Stock: p.Stock}
	}
	return out
}

func toCustomersFile(customers model.Customers) map[string]customerEntry {
	out := make(map[string]customerEntry, len(customers))
	for phone, c := range customers {
		history := c.History
		if history == nil {
			history = []model.SaleRecord{}
		}
		out[phone] = customerEntry{Name: c.Name, Points: c.Points, History: history}
	}
	return out
}

func normalizeLedger(ledger *model.Ledger) *model.Ledger {
	if ledger == nil {
		return model.NewLedger()
	}
	if ledger.Sales == nil {
		ledger.Sales = []model.SaleRecord{}
	}
	return ledger
}

type fileCatalogRepo struct {
	s *FileStore
}

func (r *fileCatalogRepo) Load(ctx context.Context) (model.Catalog, error) {
	var entries map[string]productEntry
	err := snapshot.Read(r.s.path(CatalogFile), &entries)
	if err != nil && !errors.Is(err, snapshot.ErrNotExist) {
		return nil, err
	}

	catalog := make(model.Catalog, len(entries))
	for name, e := range entries {
		catalog[name] = model.Product{Name: name, Price: e.Price, Stock: e.Stock}
	}
	return catalog, nil
}

func (r *fileCatalogRepo) Save(ctx context.Context, catalog model.Catalog) error {
	return r.s.write(r.s.path(CatalogFile), toCatalogFile(catalog))
}

type fileCustomerRepo struct {
	s *FileStore
}

func (r *fileCustomerRepo) Load(ctx context.Context) (model.Customers, error) {
	var entries map[string]customerEntry
	err := snapshot.Read(r.s.path(CustomersFile), &entries)
	if err != nil && !errors.Is(err, snapshot.ErrNotExist) {
		return nil, err
	}

	customers := make(model.Customers, len(entries))
	for phone, e := range entries {
		customers[phone] = model.Customer{Phone: phone, Name: e.Name, Points: e.Points, History: e.History}
	}
	return customers, nil
}

func (r *fileCustomerRepo) Save(ctx context.Context, customers model.Customers) error {
	return r.s.write(r.s.path(CustomersFile), toCustomersFile(customers))
}

type fileLedgerRepo struct {
	s *FileStore
}

func (r *fileLedgerRepo) Load(ctx context.Context) (*model.Ledger, error) {
	ledger := model.NewLedger()
	err := snapshot.Read(r.s.path(LedgerFile), ledger)
	if err != nil && !errors.Is(err, snapshot.ErrNotExist) {
		return nil, err
	}
	return normalizeLedger(ledger), nil
}

func (r *fileLedgerRepo) Save(ctx context.Context, ledger *model.Ledger) error {
	return r.s.write(r.s.path(LedgerFile), normalizeLedger(ledger))
}

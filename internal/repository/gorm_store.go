package repository

import (
	"context"

	"shop-billing/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productRow struct {
	Name  string          `gorm:"type:varchar(255);primaryKey"`
	Price decimal.Decimal `gorm:"type:numeric;not null"`
	Stock int             `gorm:"not null;default:0"`
}

func (productRow) TableName() string { return "products" }

type customerRow struct {
	Phone  string `gorm:"type:varchar(32);primaryKey"`
	Name   string `gorm:"type:varchar(255);not null"`
	Points int    `gorm:"not null;default:0"`
}

func (customerRow) TableName() string { return "customers" }

type customerSaleRow struct {
	ID     uint            `gorm:"primaryKey"`
	Phone  string          `gorm:"type:varchar(32);not null;index"`
	Seq    int             `gorm:"not null"`
	BillNo string          `gorm:"type:varchar(32);not null"`
	Date   string          `gorm:"type:varchar(19);not null"`
	Amount decimal.Decimal `gorm:"type:numeric;not null"`
}

func (customerSaleRow) TableName() string { return "customer_sales" }

type saleRow struct {
	Seq    int             `gorm:"primaryKey;autoIncrement:false"`
	BillNo string          `gorm:"type:varchar(32);uniqueIndex;not null"`
	Date   string          `gorm:"type:varchar(19);not null;index"`
	Amount decimal.Decimal `gorm:"type:numeric;not null"`
}

func (saleRow) TableName() string { return "sales" }

type ledgerRow struct {
	ID         uint            `gorm:"primaryKey"`
	TotalSales decimal.Decimal `gorm:"type:numeric;not null"`
}

func (ledgerRow) TableName() string { return "ledger_totals" }

const ledgerRowID = 1

// GormStore keeps the datasets in SQL tables. Saving a dataset replaces all
// of its rows, which keeps the snapshot semantics of the file store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the tables.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&productRow{}, &customerRow{}, &customerSaleRow{}, &saleRow{}, &ledgerRow{})
}

func (s *GormStore) Catalog() CatalogRepository    { return &gormCatalogRepo{s.db} }
func (s *GormStore) Customers() CustomerRepository { return &gormCustomerRepo{s.db} }
func (s *GormStore) Ledger() LedgerRepository      { return &gormLedgerRepo{s.db} }

// CommitSale writes the three snapshots inside one database transaction.
func (s *GormStore) CommitSale(ctx context.Context, commit *SaleCommit) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveCatalog(tx, commit.Catalog); err != nil {
			return err
		}
		if err := saveCustomers(tx, commit.Customers); err != nil {
			return err
		}
		return saveLedger(tx, commit.Ledger)
	})
}

// deleteAll clears a table; gorm refuses unconditioned deletes otherwise.
func deleteAll(tx *gorm.DB, row interface{}) error {
	return tx.Where("1 = 1").Delete(row).Error
}

func saveCatalog(tx *gorm.DB, catalog model.Catalog) error {
	if err := deleteAll(tx, &productRow{}); err != nil {
		return err
	}
	if len(catalog) == 0 {
		return nil
	}
	rows := make([]productRow, 0, len(catalog))
	for _, p := range catalog.Sorted() {
		rows = append(rows, productRow{Name: p.Name, Price: p.Price, Stock: p.Stock})
	}
	return tx.CreateInBatches(rows, 100).Error
}

func saveCustomers(tx *gorm.DB, customers model.Customers) error {
	if err := deleteAll(tx, &customerSaleRow{}); err != nil {
		return err
	}
	if err := deleteAll(tx, &customerRow{}); err != nil {
		return err
	}
	if len(customers) == 0 {
		return nil
	}

	var (
		rows    []customerRow
		history []customerSaleRow
	)
	for phone, c := range customers {
		rows = append(rows, customerRow{Phone: phone, Name: c.Name, Points: c.Points})
		for i, h := range c.History {
			history = append(history, customerSaleRow{
				Phone:  phone,
				Seq:    i,
				BillNo: h.BillNo,
				Date:   h.Date,
				Amount: h.Amount,
			})
		}
	}
	if err := tx.CreateInBatches(rows, 100).Error; err != nil {
		return err
	}
	if len(history) == 0 {
		return nil
	}
	return tx.CreateInBatches(history, 100).Error
}

func saveLedger(tx *gorm.DB, ledger *model.Ledger) error {
	if ledger == nil {
		ledger = model.NewLedger()
	}
	if err := deleteAll(tx, &saleRow{}); err != nil {
		return err
	}
	if len(ledger.Sales) > 0 {
		rows := make([]saleRow, len(ledger.Sales))
		for i, rec := range ledger.Sales {
			rows[i] = saleRow{Seq: i + 1, BillNo: rec.BillNo, Date: rec.Date, Amount: rec.Amount}
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return err
		}
	}
	return tx.Save(&ledgerRow{ID: ledgerRowID, TotalSales: ledger.TotalSales}).Error
}

type gormCatalogRepo struct {
	db *gorm.DB
}

func (r *gormCatalogRepo) Load(ctx context.Context) (model.Catalog, error) {
	var rows []productRow
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	catalog := make(model.Catalog, len(rows))
	for _, row := range rows {
		catalog[row.Name] = model.Product{Name: row.Name, Price: row.Price, Stock: row.Stock}
	}
	return catalog, nil
}

func (r *gormCatalogRepo) Save(ctx context.Context, catalog model.Catalog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveCatalog(tx, catalog)
	})
}

type gormCustomerRepo struct {
	db *gorm.DB
}

func (r *gormCustomerRepo) Load(ctx context.Context) (model.Customers, error) {
	var rows []customerRow
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	var history []customerSaleRow
	if err := r.db.WithContext(ctx).Order("phone ASC, seq ASC").Find(&history).Error; err != nil {
		return nil, err
	}

	customers := make(model.Customers, len(rows))
	for _, row := range rows {
		customers[row.Phone] = model.Customer{Phone: row.Phone, Name: row.Name, Points: row.Points, History: []model.SaleRecord{}}
	}
	for _, h := range history {
		c, ok := customers[h.Phone]
		if !ok {
			continue
		}
		c.History = append(c.History, model.SaleRecord{BillNo: h.BillNo, Date: h.Date, Amount: h.Amount})
		customers[h.Phone] = c
	}
	return customers, nil
}

func (r *gormCustomerRepo) Save(ctx context.Context, customers model.Customers) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveCustomers(tx, customers)
	})
}

type gormLedgerRepo struct {
	db *gorm.DB
}

func (r *gormLedgerRepo) Load(ctx context.Context) (*model.Ledger, error) {
	var rows []saleRow
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	ledger := model.NewLedger()
	for _, row := range rows {
		ledger.Sales = append(ledger.Sales, model.SaleRecord{BillNo: row.BillNo, Date: row.Date, Amount: row.Amount})
	}

	var total ledgerRow
	err := r.db.WithContext(ctx).Limit(1).Find(&total, "id = ?", ledgerRowID).Error
	if err != nil {
		return nil, err
	}
	ledger.TotalSales = total.TotalSales
	return ledger, nil
}

func (r *gormLedgerRepo) Save(ctx context.Context, ledger *model.Ledger) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveLedger(tx, ledger)
	})
}

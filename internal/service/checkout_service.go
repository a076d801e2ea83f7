package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop-billing/internal/billing"
	"shop-billing/internal/model"
	"shop-billing/internal/repository"
	"shop-billing/pkg/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CheckoutService interface {
	Quote(ctx context.Context, cart *model.Cart, info CustomerInfo) (*CheckoutQuote, error)
	Checkout(ctx context.Context, cart *model.Cart, req CheckoutRequest) (*model.Receipt, error)
}

type CustomerInfo struct {
	Name  string `json:"name" validate:"notblank"`
	Phone string `json:"phone" validate:"notblank"`
}

type CheckoutRequest struct {
	CustomerInfo
	RedeemPoints bool `json:"redeem_points"`
}

// CheckoutQuote previews a checkout without committing anything. Redeemed is
// only set when the customer may redeem points on this sale.
type CheckoutQuote struct {
	Lines               []model.ReceiptLine `json:"lines"`
	NewCustomer         bool                `json:"new_customer"`
	RedemptionAvailable bool                `json:"redemption_available"`
	Totals              billing.Totals      `json:"totals"`
	Redeemed            *billing.Totals     `json:"redeemed,omitempty"`
}

type checkoutService struct {
	store    repository.Store
	receipts repository.ReceiptRepository
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewCheckoutService(store repository.Store, receipts repository.ReceiptRepository, notifier Notifier, logger *zap.Logger, now func() time.Time) CheckoutService {
	if now == nil {
		now = time.Now
	}
	return &checkoutService{
		store:    store,
		receipts: receipts,
		notifier: notifierOrNop(notifier),
		logger:   logger,
		now:      now,
	}
}

// pendingSale is a validated cart priced against freshly loaded snapshots.
type pendingSale struct {
	info      CustomerInfo
	catalog   model.Catalog
	customers model.Customers
	ledger    *model.Ledger
	customer  model.Customer
	isNew     bool
	lines     []model.ReceiptLine
	subtotal  decimal.Decimal
}

func (s *checkoutService) prepare(ctx context.Context, cart *model.Cart, info CustomerInfo) (*pendingSale, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	info.Name = strings.TrimSpace(info.Name)
	info.Phone = strings.TrimSpace(info.Phone)
	if err := validationErr(ErrMissingCustomerInfo, validator.ValidateStruct(&info)); err != nil {
		return nil, err
	}

	catalog, err := s.store.Catalog().Load(ctx)
	if err != nil {
		return nil, persistErr("load catalog", err)
	}
	customers, err := s.store.Customers().Load(ctx)
	if err != nil {
		return nil, persistErr("load customers", err)
	}
	ledger, err := s.store.Ledger().Load(ctx)
	if err != nil {
		return nil, persistErr("load ledger", err)
	}

	p := &pendingSale{
		info:      info,
		catalog:   catalog,
		customers: customers,
		ledger:    ledger,
		subtotal:  decimal.Zero,
	}

	// Stock may have moved since the items were added.
	for _, l := range cart.Lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %q has quantity %d", ErrInvalidQuantity, l.Product, l.Quantity)
		}
		product, ok := catalog[l.Product]
		if !ok {
			return nil, fmt.Errorf("%w: product %q", ErrNotFound, l.Product)
		}
		if l.Quantity > product.Stock {
			return nil, fmt.Errorf("%w: %d of %q available, %d in cart", ErrInsufficientStock, product.Stock, l.Product, l.Quantity)
		}
		total := product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		p.lines = append(p.lines, model.ReceiptLine{
			Name:      l.Product,
			Quantity:  l.Quantity,
			UnitPrice: product.Price,
			LineTotal: total,
		})
		p.subtotal = p.subtotal.Add(total)
	}

	customer, ok := customers[info.Phone]
	if !ok {
		customer = model.Customer{Phone: info.Phone, Name: info.Name, History: []model.SaleRecord{}}
		p.isNew = true
	}
	customer.Phone = info.Phone
	p.customer = customer

	return p, nil
}

func (s *checkoutService) Quote(ctx context.Context, cart *model.Cart, info CustomerInfo) (*CheckoutQuote, error) {
	p, err := s.prepare(ctx, cart, info)
	if err != nil {
		return nil, err
	}

	totals, err := billing.Compute(p.subtotal, p.customer.Points, false)
	if err != nil {
		return nil, err
	}

	q := &CheckoutQuote{
		Lines:               p.lines,
		NewCustomer:         p.isNew,
		RedemptionAvailable: !p.isNew && billing.CanRedeem(p.customer.Points),
		Totals:              totals,
	}
	if q.RedemptionAvailable {
		redeemed, err := billing.Compute(p.subtotal, p.customer.Points, true)
		if err != nil {
			return nil, err
		}
		q.Redeemed = &redeemed
	}
	return q, nil
}

func (s *checkoutService) Checkout(ctx context.Context, cart *model.Cart, req CheckoutRequest) (*model.Receipt, error) {
	// 1. Validate cart and customer, re-price against current stock
	p, err := s.prepare(ctx, cart, req.CustomerInfo)
	if err != nil {
		return nil, err
	}

	// 2. Tax, optional redemption, points
	totals, err := billing.Compute(p.subtotal, p.customer.Points, req.RedeemPoints)
	if err != nil {
		return nil, err
	}

	// 3. Apply the sale to the loaded snapshots
	date := s.now().Format(model.DateTimeLayout)
	billNo := p.ledger.NextBillNo()
	record := model.SaleRecord{BillNo: billNo, Date: date, Amount: totals.GrandTotal}

	for _, l := range p.lines {
		product := p.catalog[l.Name]
		product.Stock -= l.Quantity
		p.catalog[l.Name] = product
	}

	customer := p.customer
	customer.Points = totals.PointsAfter
	customer.History = append(customer.History, record)
	p.customers[customer.Phone] = customer
	p.ledger.Append(record)

	receipt := &model.Receipt{
		BillNo:         billNo,
		Date:           date,
		CustomerName:   customer.Name,
		CustomerPhone:  customer.Phone,
		Lines:          p.lines,
		Subtotal:       totals.Subtotal,
		GST:            totals.GST,
		Discount:       totals.Discount,
		GrandTotal:     totals.GrandTotal,
		PointsRedeemed: totals.PointsRedeemed,
		PointsEarned:   totals.PointsEarned,
		Points:         totals.PointsAfter,
		Tier:           totals.Tier,
	}

	// 4. Receipt first, so a committed sale always has its bill on disk
	if err := s.receipts.Save(ctx, billNo, RenderReceipt(receipt)); err != nil {
		return nil, persistErr("write receipt", err)
	}

	// 5. Commit catalog, customers and ledger together
	commit := &repository.SaleCommit{Catalog: p.catalog, Customers: p.customers, Ledger: p.ledger}
	if err := s.store.CommitSale(ctx, commit); err != nil {
		if derr := s.receipts.Delete(context.Background(), billNo); derr != nil && !errors.Is(derr, repository.ErrNotFound) {
			s.logger.Error("failed to remove receipt of aborted sale", zap.String("bill_no", billNo), zap.Error(derr))
		}
		return nil, persistErr("commit sale", err)
	}

	cart.Clear()

	s.logger.Info("sale completed",
		zap.String("bill_no", billNo),
		zap.String("customer", customer.Phone),
		zap.String("grand_total", totals.GrandTotal.StringFixed(2)),
		zap.Int("points", totals.PointsAfter),
		zap.Bool("redeemed", req.RedeemPoints),
	)

	// 6. Broadcast
	stock := make(map[string]int, len(p.lines))
	for _, l := range p.lines {
		stock[l.Name] = p.catalog[l.Name].Stock
	}
	s.notifier.Publish(EventStockUpdate, map[string]interface{}{
		"action": "sale",
		"stock":  stock,
	})
	s.notifier.Publish(EventSaleCompleted, map[string]interface{}{
		"bill_no": billNo,
		"date":    date,
		"amount":  totals.GrandTotal,
		"tier":    totals.Tier,
	})

	return receipt, nil
}

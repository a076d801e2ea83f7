package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"shop-billing/internal/model"
	"shop-billing/internal/repository"

	"go.uber.org/zap"
)

// RegisterService is the single billing counter: it owns the active cart and
// serializes every operation on it.
type RegisterService interface {
	AddToCart(ctx context.Context, req AddToCartRequest) (*model.CartResponse, error)
	ViewCart() model.CartResponse
	ClearCart() model.CartResponse
	Quote(ctx context.Context, info CustomerInfo) (*CheckoutQuote, error)
	Checkout(ctx context.Context, req CheckoutRequest) (*model.Receipt, error)
}

type AddToCartRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type registerService struct {
	catalogRepo repository.CatalogRepository
	checkout    CheckoutService
	logger      *zap.Logger

	// mu is shared with the admin service so catalog writes never interleave.
	mu   sync.Locker
	cart *model.Cart
}

func NewRegisterService(catalogRepo repository.CatalogRepository, checkout CheckoutService, lock sync.Locker, logger *zap.Logger) RegisterService {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &registerService{
		catalogRepo: catalogRepo,
		checkout:    checkout,
		logger:      logger,
		mu:          lock,
		cart:        model.NewCart(),
	}
}

func (s *registerService) AddToCart(ctx context.Context, req AddToCartRequest) (*model.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product := strings.TrimSpace(req.Product)
	if product == "" {
		return nil, fmt.Errorf("%w: product is required", ErrInvalidInput)
	}

	catalog, err := s.catalogRepo.Load(ctx)
	if err != nil {
		return nil, persistErr("load catalog", err)
	}

	total, err := AddToCart(s.cart, catalog, product, req.Quantity)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("item added to cart",
		zap.String("product", product),
		zap.Int("quantity", req.Quantity),
		zap.String("cart_total", total.StringFixed(2)),
	)

	resp := s.cart.ToResponse()
	return &resp, nil
}

func (s *registerService) ViewCart() model.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ToResponse()
}

func (s *registerService) ClearCart() model.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.cart.ToResponse()
}

func (s *registerService) Quote(ctx context.Context, info CustomerInfo) (*CheckoutQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.Quote(ctx, s.cart, info)
}

// Checkout keeps the cart intact on failure so the sale can be retried.
func (s *registerService) Checkout(ctx context.Context, req CheckoutRequest) (*model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.Checkout(ctx, s.cart, req)
}

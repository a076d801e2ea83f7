package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"shop-billing/internal/model"
	"shop-billing/internal/repository"
	"shop-billing/pkg/jwt"
	"shop-billing/pkg/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type AdminService interface {
	Unlock(ctx context.Context, pin string) (*UnlockResponse, error)
	ValidateSession(token string) (*jwt.Claims, error)
	UpsertProduct(ctx context.Context, pin string, req UpsertProductRequest) (*model.Product, error)
	UpsertProductWithSession(ctx context.Context, token string, req UpsertProductRequest) (*model.Product, error)
}

type UpsertProductRequest struct {
	Name  string          `json:"name" validate:"notblank"`
	Price decimal.Decimal `json:"price" validate:"money"`
	Stock int             `json:"stock" validate:"gte=0"`
	Pin   string          `json:"pin,omitempty"`
}

type UnlockResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Products  []model.Product `json:"products"`
}

type adminService struct {
	catalogRepo repository.CatalogRepository
	pinHash     []byte
	secret      []byte
	ttl         time.Duration
	mu          sync.Locker
	notifier    Notifier
	logger      *zap.Logger
	now         func() time.Time
}

// AdminConfig carries the credentials of the admin screen.
type AdminConfig struct {
	Pin        string
	Secret     []byte
	SessionTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

func NewAdminService(catalogRepo repository.CatalogRepository, cfg AdminConfig, lock sync.Locker, notifier Notifier, logger *zap.Logger, now func() time.Time) (AdminService, error) {
	if cfg.Pin == "" {
		return nil, errors.New("admin PIN must not be empty")
	}
	if len(cfg.Secret) == 0 {
		return nil, errors.New("session secret must not be empty")
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Pin), cost)
	if err != nil {
		return nil, err
	}
	if lock == nil {
		lock = &sync.Mutex{}
	}
	if now == nil {
		now = time.Now
	}
	return &adminService{
		catalogRepo: catalogRepo,
		pinHash:     hash,
		secret:      cfg.Secret,
		ttl:         cfg.SessionTTL,
		mu:          lock,
		notifier:    notifierOrNop(notifier),
		logger:      logger,
		now:         now,
	}, nil
}

func (s *adminService) checkPin(pin string) error {
	if pin == "" || bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)) != nil {
		return ErrAccessDenied
	}
	return nil
}

func (s *adminService) Unlock(ctx context.Context, pin string) (*UnlockResponse, error) {
	if err := s.checkPin(pin); err != nil {
		s.logger.Warn("admin unlock rejected")
		return nil, err
	}

	token, claims, err := jwt.GenerateToken(s.secret, s.ttl, s.now())
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	catalog, err := s.catalogRepo.Load(ctx)
	if err != nil {
		return nil, persistErr("load catalog", err)
	}

	s.logger.Info("admin unlocked", zap.String("session_id", claims.SessionID))
	return &UnlockResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Products:  catalog.Sorted(),
	}, nil
}

func (s *adminService) ValidateSession(token string) (*jwt.Claims, error) {
	claims, err := jwt.ValidateToken(s.secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAccessDenied, err)
	}
	return claims, nil
}

func (s *adminService) UpsertProduct(ctx context.Context, pin string, req UpsertProductRequest) (*model.Product, error) {
	if err := s.checkPin(pin); err != nil {
		s.logger.Warn("product upsert rejected", zap.String("product", req.Name))
		return nil, err
	}
	return s.upsert(ctx, req)
}

func (s *adminService) UpsertProductWithSession(ctx context.Context, token string, req UpsertProductRequest) (*model.Product, error) {
	if _, err := s.ValidateSession(token); err != nil {
		return nil, err
	}
	return s.upsert(ctx, req)
}

// NormalizeProductName trims the name and title-cases each word.
func NormalizeProductName(name string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

func (s *adminService) upsert(ctx context.Context, req UpsertProductRequest) (*model.Product, error) {
	if err := validationErr(ErrInvalidInput, validator.ValidateStruct(&req)); err != nil {
		return nil, err
	}

	product := model.Product{
		Name:  NormalizeProductName(req.Name),
		Price: req.Price,
		Stock: req.Stock,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.catalogRepo.Load(ctx)
	if err != nil {
		return nil, persistErr("load catalog", err)
	}
	_, existed := catalog[product.Name]
	catalog[product.Name] = product
	if err := s.catalogRepo.Save(ctx, catalog); err != nil {
		return nil, persistErr("save catalog", err)
	}

	action := "product_created"
	if existed {
		action = "product_updated"
	}
	s.logger.Info("catalog updated",
		zap.String("action", action),
		zap.String("product", product.Name),
		zap.String("price", product.Price.StringFixed(2)),
		zap.Int("stock", product.Stock),
	)
	s.notifier.Publish(EventStockUpdate, map[string]interface{}{
		"action":  action,
		"product": product,
	})

	return &product, nil
}

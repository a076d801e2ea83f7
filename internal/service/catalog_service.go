package service

import (
	"context"

	"shop-billing/internal/model"
	"shop-billing/internal/repository"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	SeedDefaults(ctx context.Context) (bool, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
	logger      *zap.Logger
}

func NewCatalogService(catalogRepo repository.CatalogRepository, logger *zap.Logger) CatalogService {
	return &catalogService{catalogRepo: catalogRepo, logger: logger}
}

// ListProducts returns the catalog ordered by name.
func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	catalog, err := s.catalogRepo.Load(ctx)
	if err != nil {
		return nil, persistErr("load catalog", err)
	}
	return catalog.Sorted(), nil
}

// SeedDefaults writes the default catalog when none exists yet.
func (s *catalogService) SeedDefaults(ctx context.Context) (bool, error) {
	catalog, err := s.catalogRepo.Load(ctx)
	if err != nil {
		return false, persistErr("load catalog", err)
	}
	if len(catalog) > 0 {
		return false, nil
	}

	defaults := model.DefaultCatalog()
	if err := s.catalogRepo.Save(ctx, defaults); err != nil {
		return false, persistErr("seed catalog", err)
	}
	s.logger.Info("seeded default catalog", zap.Int("products", len(defaults)))
	return true, nil
}

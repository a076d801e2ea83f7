package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop-billing/internal/model"
	"shop-billing/internal/repository"
)

type CustomerService interface {
	Lookup(ctx context.Context, phone string) (*model.CustomerResponse, error)
	Receipt(ctx context.Context, billNo string) (string, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	receipts     repository.ReceiptRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, receipts repository.ReceiptRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, receipts: receipts}
}

func (s *customerService) Lookup(ctx context.Context, phone string) (*model.CustomerResponse, error) {
	customers, err := s.customerRepo.Load(ctx)
	if err != nil {
		return nil, persistErr("load customers", err)
	}
	c, ok := customers[strings.TrimSpace(phone)]
	if !ok {
		return nil, fmt.Errorf("%w: customer %q", ErrNotFound, phone)
	}
	resp := c.ToResponse()
	return &resp, nil
}

// Receipt returns the stored receipt text of a bill.
func (s *customerService) Receipt(ctx context.Context, billNo string) (string, error) {
	text, err := s.receipts.Find(ctx, strings.TrimSpace(billNo))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: bill %q", ErrNotFound, billNo)
		}
		return "", persistErr("read receipt", err)
	}
	return text, nil
}

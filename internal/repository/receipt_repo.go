package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"shop-billing/pkg/snapshot"
)

type receiptRepo struct {
	dir string
}

// NewReceiptRepo stores one Bill_<bill_no>.txt file per sale in dir.
func NewReceiptRepo(dir string) ReceiptRepository {
	return &receiptRepo{dir: dir}
}

const (
	receiptPrefix = "Bill_"
	receiptSuffix = ".txt"
)

// ReceiptFileName is the file a bill is persisted under.
func ReceiptFileName(billNo string) string {
	return receiptPrefix + billNo + receiptSuffix
}

func (r *receiptRepo) path(billNo string) (string, error) {
	if billNo == "" || strings.ContainsAny(billNo, `/\`) || strings.Contains(billNo, "..") {
		return "", ErrNotFound
	}
	return filepath.Join(r.dir, ReceiptFileName(billNo)), nil
}

func (r *receiptRepo) Save(ctx context.Context, billNo, text string) error {
	path, err := r.path(billNo)
	if err != nil {
		return err
	}
	return snapshot.WriteFile(path, []byte(text))
}

func (r *receiptRepo) Find(ctx context.Context, billNo string) (string, error) {
	path, err := r.path(billNo)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}

func (r *receiptRepo) Delete(ctx context.Context, billNo string) error {
	path, err := r.path(billNo)
	if err != nil {
		return err
	}
	return snapshot.Remove(path)
}

func (r *receiptRepo) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var bills []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, receiptPrefix) || !strings.HasSuffix(name, receiptSuffix) {
			continue
		}
		bill := strings.TrimSuffix(strings.TrimPrefix(name, receiptPrefix), receiptSuffix)
		if bill != "" {
			bills = append(bills, bill)
		}
	}
	return bills, nil
}

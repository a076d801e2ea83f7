package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

type Product struct {
	Name  string          `json:"name" validate:"notblank"`
	Price decimal.Decimal `json:"price" validate:"money"`
	Stock int             `json:"stock" validate:"gte=0"`
}

// Catalog is the whole product snapshot keyed by product name.
type Catalog map[string]Product

// Sorted returns the products ordered by name.
func (c Catalog) Sorted() []Product {
	products := make([]Product, 0, len(c))
	for _, p := range c {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products
}

// Clone returns an independent copy of the catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// DefaultCatalog is the stock a fresh shop starts with.
func DefaultCatalog() Catalog {
	seed := []struct {
		name  string
		price int64
		stock int
	}{
		{"Helmet", 1200, 15},
		{"Gloves", 500, 30},
		{"Chain Oil", 250, 20},
		{"Spark Plug", 180, 25},
		{"Tyre", 1800, 10},
		{"Brake Pad", 400, 18},
		{"Jacket", 2400, 8},
		{"LED Headlight", 950, 12},
		{"Air Filter", 300, 20},
		{"Engine Oil", 600, 16},
		{"Disc Brake Oil", 320, 10},
		{"Rear View Mirror", 250, 14},
		{"Side Stand", 150, 20},
		{"Clutch Wire", 100, 25},
		{"Bike Cover", 550, 12},
	}

	catalog := make(Catalog, len(seed))
	for _, s := range seed {
		catalog[s.name] = Product{Name: s.name, Price: decimal.NewFromInt(s.price), Stock: s.stock}
	}
	return catalog
}

package service

import (
	"fmt"

	"shop-billing/internal/model"

	"github.com/shopspring/decimal"
)

// AddToCart adds qty units of product to cart after checking them against
// the catalog, counting units already in the cart as reserved. The catalog
// is not modified; stock only moves when a sale is committed. It returns the
// cart's new running total.
func AddToCart(cart *model.Cart, catalog model.Catalog, product string, qty int) (decimal.Decimal, error) {
	if qty <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}

	p, ok := catalog[product]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: product %q", ErrNotFound, product)
	}

	// compared by subtraction; reserved+qty can overflow
	reserved := cart.Quantity(product)
	if qty > p.Stock-reserved {
		return decimal.Zero, fmt.Errorf("%w: %d of %q available, %d already in cart", ErrInsufficientStock, p.Stock, product, reserved)
	}

	cart.Add(product, qty, p.Price)
	return cart.Total(), nil
}

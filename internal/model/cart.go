package model

import "github.com/shopspring/decimal"

type CartLine struct {
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal is unit price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the lines of the sale being rung up, in the order products were
// first added.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func NewCart() *Cart {
	return &Cart{Lines: []CartLine{}}
}

// Quantity returns how many units of product are already in the cart.
func (c *Cart) Quantity(product string) int {
	for _, l := range c.Lines {
		if l.Product == product {
			return l.Quantity
		}
	}
	return 0
}

// Add sums qty into the product's line, creating it when needed. The price of
// an existing line is refreshed to unitPrice.
func (c *Cart) Add(product string, qty int, unitPrice decimal.Decimal) {
	for i := range c.Lines {
		if c.Lines[i].Product == product {
			c.Lines[i].Quantity += qty
			c.Lines[i].UnitPrice = unitPrice
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{Product: product, Quantity: qty, UnitPrice: unitPrice})
}

// Total is the running total over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// CartResponse is the cart view returned by the API.
type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

type CartLineResponse struct {
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// ToResponse converts Cart to CartResponse
func (c *Cart) ToResponse() CartResponse {
	lines := make([]CartLineResponse, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = CartLineResponse{
			Product:   l.Product,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal(),
		}
	}
	return CartResponse{Lines: lines, Total: c.Total()}
}

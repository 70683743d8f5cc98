// Package cart holds the per-session shopping cart and the stores that keep
// carts alive for the lifetime of a session.
package cart

import (
	"github.com/shopspring/decimal"

	"storefront/internal/catalog"
)

// Line is one product in the cart. Quantity is always at least 1.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an insertion-ordered set of lines with at most one line per
// product id. It is not safe for concurrent use; stores serialise access.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Restore rebuilds a cart from stored lines. Lines with a non-positive
// quantity are dropped and repeated product ids are merged into the first
// occurrence.
func Restore(lines []Line) *Cart {
	c := New()
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i := c.index(l.Product.ID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

// Add increments the line for p, or appends a new line with quantity 1.
func (c *Cart) Add(p catalog.Product) {
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
}

// Remove deletes the line for productID and reports whether one existed.
func (c *Cart) Remove(productID string) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// TotalPrice sums price times quantity over all lines, rounded half-up to
// cents.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

// LineCount is the number of distinct products, not the total quantity.
func (c *Cart) LineCount() int {
	return len(c.lines)
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) index(productID string) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

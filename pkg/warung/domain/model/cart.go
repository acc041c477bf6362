package model

import "github.com/google/uuid"

// CartLine is one pending purchase row before checkout.
type CartLine struct {
	ProductID uuid.UUID
	Name      string
	Price     int64
	Quantity  int
}

// Cart holds the pre-checkout state of a cashier session. Quantities are
// capped at the product's current stock; the cap is enforced against the
// product passed in, so callers are expected to hand over a fresh read.
type Cart struct {
	lines []CartLine
}

// Add puts one unit of the product into the cart. Adding an out-of-stock
// product is a no-op; adding a product already in the cart increments its
// quantity up to the available stock.
func (c *Cart) Add(product *Product) {
	if product.Stock == 0 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			if c.lines[i].Quantity < product.Stock {
				c.lines[i].Quantity++
			}
			return
		}
	}
	c.lines = append(c.lines, CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
	})
}

// Increase bumps the line quantity for the product, capped at its stock.
func (c *Cart) Increase(product *Product) {
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			if c.lines[i].Quantity < product.Stock {
				c.lines[i].Quantity++
			}
			return
		}
	}
}

// Decrease lowers the line quantity by one; dropping below 1 removes the
// line entirely.
func (c *Cart) Decrease(productID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			if c.lines[i].Quantity > 1 {
				c.lines[i].Quantity--
			} else {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			return
		}
	}
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// Change returns cash tendered minus the total. A negative result means the
// payment cannot be accepted.
func (c *Cart) Change(cashReceived int64) int64 {
	return cashReceived - c.Total()
}

func (c *Cart) Clear() {
	c.lines = nil
}

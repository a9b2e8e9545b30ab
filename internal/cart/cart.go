// Package cart holds the shopper's cart on the client side. The server never
// sees it until checkout, and prices here are only an estimate.
package cart

import (
	"cupcake-store/internal/dto"
	"cupcake-store/internal/model"

	"github.com/shopspring/decimal"
)

type Line struct {
	CupcakeID uint            `json:"cupcakeId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	Lines []Line `json:"lines"`
}

func (c *Cart) find(cupcakeID uint) int {
	for i, line := range c.Lines {
		if line.CupcakeID == cupcakeID {
			return i
		}
	}
	return -1
}

// Add merges into an existing line for the same cupcake. Non-positive
// quantities are ignored.
func (c *Cart) Add(product *model.Product, quantity int) {
	if product == nil || quantity <= 0 {
		return
	}

	if i := c.find(product.ID); i >= 0 {
		c.Lines[i].Quantity += quantity
		c.Lines[i].UnitPrice = product.Price
		c.Lines[i].Name = product.Name
		return
	}

	c.Lines = append(c.Lines, Line{
		CupcakeID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
	})
}

// SetQuantity removes the line when quantity drops to zero or below.
func (c *Cart) SetQuantity(cupcakeID uint, quantity int) {
	i := c.find(cupcakeID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.Remove(cupcakeID)
		return
	}
	c.Lines[i].Quantity = quantity
}

func (c *Cart) Remove(cupcakeID uint) {
	if i := c.find(cupcakeID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count is the number of cupcakes, not lines.
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}

func (c *Cart) EstimatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// OrderItems drops the prices: the server prices the order itself.
func (c *Cart) OrderItems() []*dto.Item {
	items := make([]*dto.Item, len(c.Lines))
	for i, line := range c.Lines {
		items[i] = &dto.Item{
			CupcakeID: line.CupcakeID,
			Quantity:  line.Quantity,
		}
	}
	return items
}

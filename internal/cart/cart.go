// Package cart tracks per-item quantities for catalog-based orders.
package cart

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/iliamunaev/doorstep/internal/apperr"
	"github.com/iliamunaev/doorstep/internal/model"
)

// Cart maps item ids to quantities. An id present in the cart always
// has a quantity of at least one.
//
// The zero value is an empty cart ready to use.
type Cart struct {
	qty map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{qty: make(map[string]int)}
}

// Increment adds one unit of itemID and returns the new quantity.
func (c *Cart) Increment(itemID string) int {
	if c.qty == nil {
		c.qty = make(map[string]int)
	}
	c.qty[itemID]++
	return c.qty[itemID]
}

// Decrement removes one unit of itemID and returns the new quantity.
// The item is dropped from the cart when its quantity reaches zero.
func (c *Cart) Decrement(itemID string) int {
	q := c.qty[itemID] - 1
	if q <= 0 {
		delete(c.qty, itemID)
		return 0
	}
	c.qty[itemID] = q
	return q
}

// Quantity returns the selected quantity of itemID, 0 if absent.
func (c *Cart) Quantity(itemID string) int {
	return c.qty[itemID]
}

// Len returns the number of distinct items in the cart.
func (c *Cart) Len() int { return len(c.qty) }

// CanProceed reports whether the cart holds anything to bill.
func (c *Cart) CanProceed() bool { return len(c.qty) > 0 }

// IDs returns the selected item ids in sorted order.
func (c *Cart) IDs() []string {
	return slices.Sorted(maps.Keys(c.qty))
}

// Total sums quantity × unit price over the cart. Ids missing from
// items contribute nothing.
func (c *Cart) Total(items []model.CatalogItem) int64 {
	var total int64
	for _, it := range items {
		total += int64(c.qty[it.ID]) * it.UnitPrice
	}
	return total
}

// Lines returns the selected items in catalog order.
func (c *Cart) Lines(items []model.CatalogItem) []model.LineItem {
	out := make([]model.LineItem, 0, len(c.qty))
	for _, it := range items {
		if q := c.qty[it.ID]; q > 0 {
			out = append(out, model.LineItem{Item: it, Quantity: q})
		}
	}
	return out
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	out := New()
	maps.Copy(out.qty, c.qty)
	return out
}

// Encode serializes the cart as a JSON object of item id to quantity.
func (c *Cart) Encode() (string, error) {
	m := c.qty
	if m == nil {
		m = map[string]int{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("cart: encode: %w", err)
	}
	return string(b), nil
}

// Decode parses a cart produced by Encode. Entries with a non-positive
// quantity are dropped. An empty string decodes to an empty cart.
func Decode(s string) (*Cart, error) {
	c := New()
	if s == "" {
		return c, nil
	}
	var m map[string]int
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return New(), fmt.Errorf("cart: decode: %w: %v", apperr.ErrInvalidPayload, err)
	}
	for id, q := range m {
		if q > 0 {
			c.qty[id] = q
		}
	}
	return c, nil
}

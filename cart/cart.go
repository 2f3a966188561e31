// Package cart holds the per-session list of books pending purchase.
package cart

import (
	"context"
	"slices"

	"go-ebook-store/models"

	"github.com/shopspring/decimal"
)

// Catalog resolves book IDs to books. Unknown IDs are omitted from the result.
type Catalog interface {
	FindMany(ctx context.Context, ids []uint) ([]models.Book, error)
}

// Cart is an ordered, duplicate-free list of book IDs.
// The zero value is an empty cart.
type Cart struct {
	Items []uint `json:"items"`
}

// Add appends id unless it is already present. It reports whether the cart changed.
func (c *Cart) Add(id uint) bool {
	if slices.Contains(c.Items, id) {
		return false
	}
	c.Items = append(c.Items, id)
	return true
}

// Remove deletes id. Removing an absent id is a no-op that returns false.
func (c *Cart) Remove(id uint) bool {
	i := slices.Index(c.Items, id)
	if i < 0 {
		return false
	}
	c.Items = slices.Delete(c.Items, i, i+1)
	return true
}

// List returns a copy of the IDs in insertion order.
func (c *Cart) List() []uint {
	return slices.Clone(c.Items)
}

// Contains reports whether id is in the cart.
func (c *Cart) Contains(id uint) bool {
	return slices.Contains(c.Items, id)
}

// Len returns the number of IDs in the cart.
func (c *Cart) Len() int {
	return len(c.Items)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Resolve returns the cart's books that still exist in the catalog.
func (c *Cart) Resolve(ctx context.Context, catalog Catalog) ([]models.Book, error) {
	if len(c.Items) == 0 {
		return nil, nil
	}
	return catalog.FindMany(ctx, c.List())
}

// Total sums the prices of every resolvable book. Stale IDs are skipped.
func (c *Cart) Total(ctx context.Context, catalog Catalog) (decimal.Decimal, error) {
	books, err := c.Resolve(ctx, catalog)
	if err != nil {
		return decimal.Zero, err
	}
	return models.SumPrices(books), nil
}

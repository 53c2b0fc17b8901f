package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ffoods/quickbill/models"
)

var (
	ErrItemUnavailable = errors.New("item is not available")
	ErrItemNotFound    = errors.New("item not in cart")
)

// Entry pairs a menu item with a positive quantity. Quantity is always >= 1;
// an entry dropping to zero is removed from the cart instead.
type Entry struct {
	Item     models.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

func (e Entry) LineAmount() decimal.Decimal {
	return e.Item.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Cart holds the items a session has selected before checkout. Entries keep
// insertion order for display; there is at most one entry per menu item id.
// A Cart belongs to exactly one session and is mutated by one request at a
// time, so it does no locking of its own.
type Cart struct {
	entries []Entry
}

func New() *Cart {
	return &Cart{}
}

// Add puts quantity units of item into the cart, merging with an existing
// entry for the same item id. Quantities below 1 are clamped to 1.
func (c *Cart) Add(item models.MenuItem, quantity int) error {
	if !item.Available {
		return ErrItemUnavailable
	}
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.entries {
		if c.entries[i].Item.ID == item.ID {
			c.entries[i].Quantity += quantity
			return nil
		}
	}
	c.entries = append(c.entries, Entry{Item: item, Quantity: quantity})
	return nil
}

// UpdateQuantity sets the quantity of the entry for itemID. A quantity of
// zero or less removes the entry.
func (c *Cart) UpdateQuantity(itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		c.Remove(itemID)
		return nil
	}
	for i := range c.entries {
		if c.entries[i].Item.ID == itemID {
			c.entries[i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

// Remove deletes the entry for itemID; removing an absent item is a no-op.
func (c *Cart) Remove(itemID uuid.UUID) {
	for i := range c.entries {
		if c.entries[i].Item.ID == itemID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// TotalItemCount is the sum of all entry quantities, used for the cart badge.
func (c *Cart) TotalItemCount() int {
	total := 0
	for _, e := range c.entries {
		total += e.Quantity
	}
	return total
}

// TotalAmount is the sum of unit price times quantity over all entries.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.entries {
		total = total.Add(e.LineAmount())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// Entries returns a copy of the cart contents in insertion order. Mutating
// the returned slice does not affect the cart.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Clear empties the cart. Called once a checkout completes.
func (c *Cart) Clear() {
	c.entries = nil
}

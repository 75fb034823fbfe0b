package store

import (
	"encoding/json"
	"fmt"
	"log"
)

// CartVariant distinguishes otherwise-identical catalog entries in the
// cart, e.g. Size=M.
type CartVariant struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CartItem struct {
	ProductID int          `json:"productId"`
	Name      string       `json:"name"`
	Price     float64      `json:"price"`
	Image     string       `json:"image"`
	Slug      string       `json:"slug"`
	Quantity  int          `json:"quantity"`
	Variant   *CartVariant `json:"variant,omitempty"`
}

func (i CartItem) variantID() int {
	if i.Variant == nil {
		return 0
	}
	return i.Variant.ID
}

// Cart is an ordered list of items keyed by (product id, variant id). Every
// mutation is flushed to the persister. Not safe for concurrent use; each
// session owns its own cart.
type Cart struct {
	key       string
	items     []CartItem
	persister Persister
}

// NewCart loads the cart stored under key, starting empty when no snapshot
// exists or the snapshot cannot be decoded.
func NewCart(key string, p Persister) *Cart {
	c := &Cart{key: key, persister: p}
	data, err := p.Load(key)
	if err != nil {
		log.Printf("cart %s: load failed, starting empty: %v", key, err)
		return c
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &c.items); err != nil {
			log.Printf("cart %s: corrupt snapshot, starting empty: %v", key, err)
			c.items = nil
		}
	}
	return c
}

func (c *Cart) flush() error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("cart marshal error: %w", err)
	}
	return c.persister.Save(c.key, data)
}

func (c *Cart) find(productID, variantID int) int {
	for i, item := range c.items {
		if item.ProductID == productID && item.variantID() == variantID {
			return i
		}
	}
	return -1
}

// AddItem merges into an existing entry with the same (product, variant)
// key, otherwise appends. A zero quantity on the incoming item counts as 1.
func (c *Cart) AddItem(item CartItem) error {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if i := c.find(item.ProductID, item.variantID()); i >= 0 {
		c.items[i].Quantity += item.Quantity
	} else {
		c.items = append(c.items, item)
	}
	return c.flush()
}

// RemoveItem deletes the matching entry. Removing an absent entry is a
// no-op.
func (c *Cart) RemoveItem(productID, variantID int) error {
	i := c.find(productID, variantID)
	if i < 0 {
		return nil
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return c.flush()
}

// UpdateQuantity sets the quantity directly. A quantity of zero or less
// removes the entry.
func (c *Cart) UpdateQuantity(productID, variantID, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(productID, variantID)
	}
	if i := c.find(productID, variantID); i >= 0 {
		c.items[i].Quantity = quantity
		return c.flush()
	}
	return nil
}

func (c *Cart) Clear() error {
	c.items = nil
	return c.flush()
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalPrice is the running sum of price x quantity. Rounding happens at
// display time only.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// TotalItems is the sum of quantities, not the count of distinct entries.
func (c *Cart) TotalItems() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

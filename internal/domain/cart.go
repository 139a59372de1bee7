package domain

import "slices"

type MenuItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Icon  string `json:"icon"`
}

type CartItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// Cart holds the concession items of one booking attempt, keyed by item name and kept in
// insertion order. An item never stays in the cart with a zero quantity.
type Cart struct {
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add increments the quantity of an existing entry or inserts item with quantity 1.
// The price is captured from item at this point.
func (c *Cart) Add(item MenuItem) {
	if i := c.index(item.Name); i >= 0 {
		c.items[i].Quantity++
		return
	}

	c.items = append(c.items, CartItem{MenuItem: item, Quantity: 1})
}

// Remove takes one unit of the named item away and drops the entry at zero.
// Unknown names are ignored.
func (c *Cart) Remove(name string) {
	i := c.index(name)
	if i < 0 {
		return
	}

	if c.items[i].Quantity > 1 {
		c.items[i].Quantity--
		return
	}

	c.items = slices.Delete(c.items, i, i+1)
}

func (c *Cart) Total() int64 {
	var total int64

	for _, item := range c.items {
		total += item.Price * int64(item.Quantity)
	}

	return total
}

func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)

	return items
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Reset() {
	c.items = nil
}

func (c *Cart) index(name string) int {
	return slices.IndexFunc(c.items, func(item CartItem) bool {
		return item.Name == name
	})
}

// Package cart holds the session-scoped cart aggregate. A non-empty cart is
// bound to exactly one foodtruck; items merge by case-insensitive name.
package cart

import (
	"fmt"
	"strings"

	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
)

type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Cart keeps items as a slice so display order follows insertion order.
type Cart struct {
	FoodtruckID string `json:"foodtruckId"`
	Items       []Item `json:"items"`
}

func New() *Cart {
	return &Cart{}
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AddItem upserts an item resolved from the given foodtruck's menu. Adding to
// a non-empty cart bound to another foodtruck is a conflict; the caller has
// to clear the cart first.
func (c *Cart) AddItem(foodtruckID string, item Item) error {
	if foodtruckID == "" || normalizeKey(item.Name) == "" {
		return domain.InvalidInput("foodtruck id and item name are required")
	}
	if item.Quantity <= 0 {
		return domain.InvalidInput("amount must be greater than zero")
	}
	if len(c.Items) > 0 && c.FoodtruckID != foodtruckID {
		return domain.CartConflict("cart already contains items from another foodtruck")
	}

	c.FoodtruckID = foodtruckID

	key := normalizeKey(item.Name)
	for i := range c.Items {
		if normalizeKey(c.Items[i].Name) == key {
			c.Items[i].Quantity += item.Quantity
			c.Items[i].Price = item.Price
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

// RemoveItem deletes the line with the given name. The foodtruck binding is
// kept even when the last item goes; only Clear releases it.
func (c *Cart) RemoveItem(name string) error {
	key := normalizeKey(name)
	if key == "" {
		return domain.InvalidInput("item name is required")
	}
	for i := range c.Items {
		if normalizeKey(c.Items[i].Name) == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return domain.CartConflict("no item %q in cart", name)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) TotalItemCount() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += float64(it.Quantity) * it.Price
	}
	return total
}

// FormattedTotal renders the total as a currency string for display.
func (c *Cart) FormattedTotal() string {
	return fmt.Sprintf("€%.2f", c.TotalPrice())
}

// Clear empties the cart and releases the foodtruck binding.
func (c *Cart) Clear() {
	c.FoodtruckID = ""
	c.Items = nil
}

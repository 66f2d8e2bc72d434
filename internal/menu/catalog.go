package menu

import (
	"github.com/shopspring/decimal"

	"bella-vista/internal/models"
)

// Catalog is the fixed list of purchasable items, shared read-only by
// all sessions.
type Catalog struct {
	items []models.MenuItem
}

// Default returns the restaurant's menu.
func Default() *Catalog {
	return &Catalog{
		items: []models.MenuItem{
			{ID: 1, Name: "Pizza", Description: "Delicious pizza with assorted toppings", Price: decimal.NewFromInt(10)},
			{ID: 2, Name: "Pasta", Description: "Authentic Italian pasta", Price: decimal.NewFromInt(12)},
			{ID: 3, Name: "Salad", Description: "Fresh garden salad", Price: decimal.NewFromInt(8)},
		},
	}
}

// List returns the menu items in display order.
func (c *Catalog) List() []models.MenuItem {
	return c.items
}

// Item looks up a menu item by id.
func (c *Catalog) Item(id int) (models.MenuItem, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

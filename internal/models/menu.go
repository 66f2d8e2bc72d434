package models

import "github.com/shopspring/decimal"

// MenuItem is a purchasable item. The menu is fixed at process start and
// never persisted.
type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

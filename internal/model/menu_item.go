package model

import "github.com/shopspring/decimal"

// MenuItem is a dish offered by the restaurant.  It corresponds to a row in
// the `menu_items` table.
//
// Fields:
//
//	ID        – primary key, assigned by the database and never reused.
//	Title     – name shown on the menu.
//	Price     – exact monetary value with two decimal places.
//	Inventory – portions in stock, never negative.
type MenuItem struct {
	ID        uint64          `db:"id"`        // menu_items.id
	Title     string          `db:"title"`     // menu_items.title
	Price     decimal.Decimal `db:"price"`     // menu_items.price DECIMAL(10,2)
	Inventory int             `db:"inventory"` // menu_items.inventory
}

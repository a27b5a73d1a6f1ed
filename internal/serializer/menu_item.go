package serializer

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/little-lemon/internal/model"
)

// MenuItemJSON is the wire form of a menu item.  Price travels as a
// two-place decimal string so it never passes through a float.
type MenuItemJSON struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Inventory int    `json:"inventory"`
}

// MenuItemToJSON renders m.
func MenuItemToJSON(m model.MenuItem) MenuItemJSON {
	return MenuItemJSON{
		ID:        m.ID,
		Title:     m.Title,
		Price:     m.Price.StringFixed(2),
		Inventory: m.Inventory,
	}
}

// MenuItemsToJSON renders a list; an empty input yields [] rather than null.
func MenuItemsToJSON(items []model.MenuItem) []MenuItemJSON {
	out := make([]MenuItemJSON, 0, len(items))
	for _, m := range items {
		out = append(out, MenuItemToJSON(m))
	}
	return out
}

// MenuItemInput holds the validated client fields.  A nil pointer means the
// field was not supplied (only possible in partial mode).
type MenuItemInput struct {
	Title     *string
	Price     *decimal.Decimal
	Inventory *int
}

var (
	titleField     = CharField{MaxLength: 255}
	priceField     = DecimalField{MaxDigits: 10, DecimalPlaces: 2, NonNegative: true}
	inventoryField = IntegerField{Min: 0, Max: maxInt32}
)

// ValidateMenuItem checks body.  With partial=false every field is required
// (create and PUT); with partial=true absent fields are left alone (PATCH).
func ValidateMenuItem(body Body, partial bool) Result[MenuItemInput] {
	errs := FieldErrors{}
	in := MenuItemInput{
		Title:     Field[string](body, "title", partial, errs, titleField),
		Price:     Field[decimal.Decimal](body, "price", partial, errs, priceField),
		Inventory: Field[int](body, "inventory", partial, errs, inventoryField),
	}
	return result(in, errs)
}

// ApplyTo copies the supplied fields onto m.  The id is never touched.
func (in MenuItemInput) ApplyTo(m *model.MenuItem) {
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Price != nil {
		m.Price = *in.Price
	}
	if in.Inventory != nil {
		m.Inventory = *in.Inventory
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/little-lemon/internal/model"
)

const (
	qMenuItemList   = "SELECT id, title, price, inventory FROM menu_items ORDER BY id"
	qMenuItemGet    = "SELECT id, title, price, inventory FROM menu_items WHERE id = ?"
	qMenuItemInsert = "INSERT INTO menu_items (title, price, inventory) VALUES (?, ?, ?)"
	qMenuItemUpdate = "UPDATE menu_items SET title = ?, price = ?, inventory = ? WHERE id = ?"
	qMenuItemDelete = "DELETE FROM menu_items WHERE id = ?"
)

// MenuItemRepo encapsulates all database queries related to menu items.
type MenuItemRepo struct {
	db *sqlx.DB // db is the underlying connection pool
}

// NewMenuItemRepo constructs a MenuItemRepo with the provided DB handle.
func NewMenuItemRepo(db *sqlx.DB) *MenuItemRepo {
	return &MenuItemRepo{db: db}
}

// List returns every menu item in insertion (id) order.  The result is
// never nil.
func (r *MenuItemRepo) List(ctx context.Context) ([]model.MenuItem, error) {
	items := []model.MenuItem{}
	if err := r.db.SelectContext(ctx, &items, qMenuItemList); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID fetches a single menu item, or ErrMenuItemNotFound.
func (r *MenuItemRepo) GetByID(ctx context.Context, id uint64) (*model.MenuItem, error) {
	var m model.MenuItem
	if err := r.db.GetContext(ctx, &m, qMenuItemGet, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts m and fills in its auto-generated ID.
func (r *MenuItemRepo) Create(ctx context.Context, m *model.MenuItem) error {
	res, err := r.db.ExecContext(ctx, qMenuItemInsert, m.Title, m.Price, m.Inventory)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Update overwrites every mutable column of the row m.ID.  The connection
// reports matched rows, so zero means the row is gone.
func (r *MenuItemRepo) Update(ctx context.Context, m *model.MenuItem) error {
	res, err := r.db.ExecContext(ctx, qMenuItemUpdate, m.Title, m.Price, m.Inventory, m.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrMenuItemNotFound)
}

// Delete removes the row, or returns ErrMenuItemNotFound if none matched.
func (r *MenuItemRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, qMenuItemDelete, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrMenuItemNotFound)
}

func affectedOrNotFound(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/little-lemon/internal/middleware"
	"github.com/iliyamo/little-lemon/internal/model"
	"github.com/iliyamo/little-lemon/internal/repository"
	"github.com/iliyamo/little-lemon/internal/serializer"
)

// MenuItemHandler serves /menu-items/ and /menu-items/:id.
type MenuItemHandler struct {
	Items MenuItemStore
}

func NewMenuItemHandler(items MenuItemStore) *MenuItemHandler {
	if items == nil {
		panic("nil store passed to NewMenuItemHandler")
	}
	return &MenuItemHandler{Items: items}
}

// List handles GET /menu-items/ and returns every item.
func (h *MenuItemHandler) List(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	items, err := h.Items.List(ctx)
	if err != nil {
		return internalError(c, "list menu items", err)
	}
	return c.JSON(http.StatusOK, serializer.MenuItemsToJSON(items))
}

// Create handles POST /menu-items/.  All fields are required.
func (h *MenuItemHandler) Create(c echo.Context) error {
	body, err := bindBody(c)
	if err != nil {
		return err
	}
	res := serializer.ValidateMenuItem(body, false)
	if !res.OK() {
		return validationFailed(c, res.Errors)
	}
	var m model.MenuItem
	res.Value.ApplyTo(&m)

	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Items.Create(ctx, &m); err != nil {
		return internalError(c, "create menu item", err)
	}
	return c.JSON(http.StatusCreated, serializer.MenuItemToJSON(m))
}

// Get handles GET /menu-items/:id.
func (h *MenuItemHandler) Get(c echo.Context) error {
	id, ok := middleware.IDParam(c)
	if !ok {
		return notFound(c, "menu item")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	m, err := h.Items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return notFound(c, "menu item")
		}
		return internalError(c, "get menu item", err)
	}
	return c.JSON(http.StatusOK, serializer.MenuItemToJSON(*m))
}

// Update handles PUT and PATCH /menu-items/:id.  PUT requires every field;
// PATCH changes only the fields supplied.  A missing record is reported
// before any validation error.
func (h *MenuItemHandler) Update(c echo.Context) error {
	id, ok := middleware.IDParam(c)
	if !ok {
		return notFound(c, "menu item")
	}
	partial := c.Request().Method == http.MethodPatch

	ctx, cancel := storeCtx(c)
	defer cancel()
	m, err := h.Items.GetByID(ctx, id) // load first so 404 wins over 400
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return notFound(c, "menu item")
		}
		return internalError(c, "get menu item", err)
	}

	body, err := bindBody(c)
	if err != nil {
		return err
	}
	res := serializer.ValidateMenuItem(body, partial)
	if !res.OK() {
		return validationFailed(c, res.Errors)
	}
	res.Value.ApplyTo(m)

	if err := h.Items.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return notFound(c, "menu item")
		}
		return internalError(c, "update menu item", err)
	}
	return c.JSON(http.StatusOK, serializer.MenuItemToJSON(*m))
}

// Delete handles DELETE /menu-items/:id and answers 204.
func (h *MenuItemHandler) Delete(c echo.Context) error {
	id, ok := middleware.IDParam(c)
	if !ok {
		return notFound(c, "menu item")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Items.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return notFound(c, "menu item")
		}
		return internalError(c, "delete menu item", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Package repository contains data access logic separated from HTTP
// handlers.  Each repository wraps a sqlx handle and translates driver
// level outcomes into the sentinel values below, so that handlers can map
// them to status codes without knowing about SQL.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrMenuItemNotFound is returned when no menu item has the requested id.
// Handlers translate it into an HTTP 404 response.
var ErrMenuItemNotFound = errors.New("menu item not found")

// ErrBookingNotFound is returned when no booking has the requested id.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUserNotFound is returned by user lookups that match no row.
var ErrUserNotFound = errors.New("user not found")

// ErrTokenNotFound is returned when a token key is unknown, revoked or
// belongs to an inactive user.
var ErrTokenNotFound = errors.New("token not found")

// ErrTokenExists signals that the user already holds a token; a concurrent
// login created it first.
var ErrTokenExists = errors.New("token already exists")

// ErrUsernameExists is returned when registering a taken username.
var ErrUsernameExists = errors.New("username already exists")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

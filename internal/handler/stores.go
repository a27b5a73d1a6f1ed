package handler

import (
	"context"

	"github.com/iliyamo/little-lemon/internal/model"
	"github.com/iliyamo/little-lemon/internal/queue"
)

// The store interfaces below are what handlers need from the data store.
// The repository package provides the MySQL implementations; tests use
// in-memory fakes.

// MenuItemStore persists menu items.  Lookups of a missing id return
// repository.ErrMenuItemNotFound.
type MenuItemStore interface {
	List(ctx context.Context) ([]model.MenuItem, error)
	GetByID(ctx context.Context, id uint64) (*model.MenuItem, error)
	Create(ctx context.Context, m *model.MenuItem) error
	Update(ctx context.Context, m *model.MenuItem) error
	Delete(ctx context.Context, id uint64) error
}

// BookingStore persists bookings.  Lookups of a missing id return
// repository.ErrBookingNotFound.
type BookingStore interface {
	List(ctx context.Context) ([]model.Booking, error)
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	Create(ctx context.Context, b *model.Booking) error
	Update(ctx context.Context, b *model.Booking) error
	Delete(ctx context.Context, id uint64) error
}

type UserStore interface {
	Create(ctx context.Context, username, email, password string, cost int) (uint64, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

type TokenStore interface {
	Create(ctx context.Context, userID uint64, key string) error
	KeyForUser(ctx context.Context, userID uint64) (string, error)
	UserByKey(ctx context.Context, key string) (*model.User, error)
	DeleteByKey(ctx context.Context, key string) error
}

// EventPublisher receives booking change events.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error
}

// Pinger reports whether the data store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

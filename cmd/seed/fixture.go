package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// Fixture is the data the seed command writes.  It can be read from a TOML
// file:
//
//	[[users]]
//	username = "admin"
//	password = "password"
//	email = "admin@domain.com"
//
//	[[menu_items]]
//	title = "Greek salad"
//	price = "12.50"
//	inventory = 20
type Fixture struct {
	Users     []FixtureUser     `toml:"users"`
	MenuItems []FixtureMenuItem `toml:"menu_items"`
}

type FixtureUser struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	Email    string `toml:"email"`
}

// FixtureMenuItem keeps the price as text so it is never parsed as a float.
type FixtureMenuItem struct {
	Title     string `toml:"title"`
	Price     string `toml:"price"`
	Inventory int    `toml:"inventory"`
}

// DefaultFixture is the demo data: an admin, five users and ten dishes.
func DefaultFixture() Fixture {
	fx := Fixture{
		Users: []FixtureUser{{Username: "admin", Password: "password", Email: "admin@domain.com"}},
	}
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("user-%d", i)
		fx.Users = append(fx.Users, FixtureUser{
			Username: name,
			Password: fmt.Sprintf("password-%d", i),
			Email:    name + "@domain.com",
		})
	}
	for i := 0; i < 10; i++ {
		fx.MenuItems = append(fx.MenuItems, FixtureMenuItem{
			Title:     fmt.Sprintf("Menu item #%d", i),
			Price:     decimal.NewFromInt(int64(10 + i)).StringFixed(2),
			Inventory: i + 10,
		})
	}
	return fx
}

// LoadFixture reads and validates a TOML fixture.
func LoadFixture(path string) (Fixture, error) {
	var fx Fixture
	if _, err := toml.DecodeFile(path, &fx); err != nil {
		return Fixture{}, fmt.Errorf("failed to load fixture: %w", err)
	}
	if err := fx.validate(); err != nil {
		return Fixture{}, fmt.Errorf("invalid fixture %s: %w", path, err)
	}
	return fx, nil
}

func (fx Fixture) validate() error {
	var errs []error
	for i, u := range fx.Users {
		if u.Username == "" || u.Password == "" {
			errs = append(errs, fmt.Errorf("users[%d]: username and password are required", i))
		}
	}
	for i, m := range fx.MenuItems {
		if m.Title == "" {
			errs = append(errs, fmt.Errorf("menu_items[%d]: title is required", i))
		}
		if d, err := decimal.NewFromString(m.Price); err != nil || d.IsNegative() {
			errs = append(errs, fmt.Errorf("menu_items[%d]: invalid price %q", i, m.Price))
		}
		if m.Inventory < 0 {
			errs = append(errs, fmt.Errorf("menu_items[%d]: inventory must not be negative", i))
		}
	}
	return errors.Join(errs...)
}

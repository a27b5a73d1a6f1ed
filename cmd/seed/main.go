// Command seed resets the user table and loads demo data: an admin account,
// a few regular users and a menu.  Existing menu items are kept.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/little-lemon/internal/config"
	"github.com/iliyamo/little-lemon/internal/database"
	"github.com/iliyamo/little-lemon/internal/model"
	"github.com/iliyamo/little-lemon/internal/repository"
)

type userSeeder interface {
	DeleteAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, username, email, password string, cost int) (uint64, error)
}

type menuSeeder interface {
	Create(ctx context.Context, m *model.MenuItem) error
}

func main() {
	fixturePath := flag.String("fixture", "", "TOML fixture to load instead of the built-in demo data")
	envFile := flag.String("env", ".env", "dotenv file to read before the environment")
	flag.Parse()

	logger := log.New("seed")
	logger.SetHeader("${time_rfc3339} ${level} ${prefix}")

	cfg, err := config.LoadWithFile(*envFile)
	if err != nil {
		logger.Fatal(err)
	}

	fx := DefaultFixture()
	if *fixturePath != "" {
		if fx, err = LoadFixture(*fixturePath); err != nil {
			logger.Fatal(err)
		}
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db, logger.Infof); err != nil {
		logger.Fatalf("migrate: %v", err)
	}
	if err := seed(ctx, repository.NewUserRepo(db), repository.NewMenuItemRepo(db), fx, cfg.BcryptCost, logger.Infof); err != nil {
		logger.Fatal(err)
	}
}

// seed deletes every user (tokens go with them) and writes fx.
func seed(ctx context.Context, users userSeeder, items menuSeeder, fx Fixture, cost int, logf func(format string, args ...any)) error {
	n, err := users.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	logf("deleted %d users", n)

	for _, u := range fx.Users {
		if _, err := users.Create(ctx, u.Username, u.Email, u.Password, cost); err != nil {
			return fmt.Errorf("create user %s: %w", u.Username, err)
		}
	}
	logf("created %d users", len(fx.Users))

	for _, fm := range fx.MenuItems {
		price, err := decimal.NewFromString(fm.Price)
		if err != nil {
			return fmt.Errorf("menu item %q: %w", fm.Title, err)
		}
		m := &model.MenuItem{Title: fm.Title, Price: price, Inventory: fm.Inventory}
		if err := items.Create(ctx, m); err != nil {
			return fmt.Errorf("create menu item %q: %w", fm.Title, err)
		}
	}
	logf("created %d menu items", len(fx.MenuItems))
	return nil
}

package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/little-lemon/internal/config"
)

func TestMigrations_Ordered(t *testing.T) {
	names, err := Migrations()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/0001_users.sql",
		"migrations/0002_auth_tokens.sql",
		"migrations/0003_menu_items.sql",
		"migrations/0004_bookings.sql",
	}, names)
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	names, err := Migrations()
	require.NoError(t, err)
	for _, name := range names {
		body, err := migrationsFS.ReadFile(name)
		require.NoError(t, err)
		mock.ExpectExec(string(body)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	var applied []string
	err = Migrate(context.Background(), db, func(format string, args ...any) {
		applied = append(applied, fmt.Sprintf(format, args...))
	})
	require.NoError(t, err)
	assert.Len(t, applied, len(names))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_StopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("boom"))

	err = Migrate(context.Background(), db, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0001_users.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{User: "lemon", Pass: "pw", Host: "db", Port: "3306", Name: "littlelemon"})
	assert.Contains(t, dsn, "lemon:pw@tcp(db:3306)/littlelemon?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

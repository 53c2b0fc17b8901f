package database

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hashicorp/go-multierror"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/ffoods/quickbill/config"
)

// QuickBill is the shared connection pool, set by ConnectAndMigrate.
var QuickBill *sql.DB

func ConnectAndMigrate() error {
	url := config.DatabaseURL()
	if url == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	QuickBill = db
	return migrateUp(db)
}

func migrateUp(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("migration setup: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}
	logrus.Info("database migrations applied")
	return nil
}

// Tx runs fn inside a transaction; commit and rollback errors are
// aggregated with the function's own error.
func Tx(fn func(tx *sql.Tx) error) error {
	tx, err := QuickBill.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return multierror.Append(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func Shutdown() error {
	if QuickBill == nil {
		return nil
	}
	return QuickBill.Close()
}

package database

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate"
	migratemysql "github.com/golang-migrate/migrate/database/mysql"
	_ "github.com/golang-migrate/migrate/source/file"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/cmd/config"
)

// Connect opens the MySQL pool and applies the pool limits.
func Connect(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	return db, nil
}

// Migrate brings the schema up to the latest version in MigrationsPath.
// It reports whether anything was applied.
func Migrate(cfg *config.Config) (bool, error) {
	conn, err := sql.Open("mysql", cfg.GetMigrationDSN())
	if err != nil {
		return false, fmt.Errorf("open migration connection: %w", err)
	}
	defer conn.Close()

	driver, err := migratemysql.WithInstance(conn, &migratemysql.Config{})
	if err != nil {
		return false, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.Database.MigrationsPath, "mysql", driver)
	if err != nil {
		return false, fmt.Errorf("migration instance: %w", err)
	}

	err = m.Up()
	if err == migrate.ErrNoChange {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("migrate up: %w", err)
	}
	return true, nil
}

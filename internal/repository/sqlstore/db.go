// Package sqlstore implements the upload and report repositories on SQLite or PostgreSQL.
// Queries are written with ? placeholders and rebound for the connected driver.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"readiness/db/migrations"
	"readiness/internal/config"
	"readiness/internal/domain"
)

const (
	driverPostgres = "pgx"
	driverSQLite   = "sqlite"
)

func init() {
	sqlx.BindDriver(driverSQLite, sqlx.QUESTION)
}

// NewDB opens the configured backend and applies pending migrations when auto-migrate is on.
func NewDB(storage *config.StorageConfig, pg *config.DBConfig) (*sqlx.DB, error) {
	backend := domain.StorageBackend(storage.Backend)

	var (
		db  *sqlx.DB
		err error
	)
	switch backend {
	case domain.BackendSQLite:
		db, err = sqlx.Connect(driverSQLite, sqliteDSN(storage.SQLitePath))
		if err != nil {
			return nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		// SQLite has a single writer.
		db.SetMaxOpenConns(1)
	case domain.BackendPostgres:
		db, err = sqlx.Connect(driverPostgres, pg.DSN())
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		db.SetMaxOpenConns(pg.MaxOpen)
		db.SetMaxIdleConns(pg.MaxIdle)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", storage.Backend)
	}

	if storage.AutoMigrate {
		if err := Migrate(context.Background(), db, backend); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func sqliteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// NewMigrator builds a migrate instance over the embedded migrations of the backend.
// For sqlite, closing the returned instance closes db. For postgres it releases a dedicated connection.
func NewMigrator(ctx context.Context, db *sqlx.DB, backend domain.StorageBackend) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, string(backend))
	if err != nil {
		return nil, fmt.Errorf("loading %s migrations: %w", backend, err)
	}

	var drv database.Driver
	switch backend {
	case domain.BackendSQLite:
		drv, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	case domain.BackendPostgres:
		var conn *sql.Conn
		if conn, err = db.Conn(ctx); err == nil {
			drv, err = migratepg.WithConnection(ctx, conn, &migratepg.Config{})
		}
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s migration driver: %w", backend, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(backend), drv)
	if err != nil {
		return nil, fmt.Errorf("creating migrate instance: %w", err)
	}
	return m, nil
}

// Migrate applies all pending migrations. db stays open.
func Migrate(ctx context.Context, db *sqlx.DB, backend domain.StorageBackend) error {
	m, err := NewMigrator(ctx, db, backend)
	if err != nil {
		return err
	}
	if backend == domain.BackendPostgres {
		defer func() { _, _ = m.Close() }()
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying %s migrations: %w", backend, err)
	}
	return nil
}

// storageErr marks err as a storage failure while keeping the driver error in the chain.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageFailure, err)
}

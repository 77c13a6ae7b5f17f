package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var (
	ErrConnect = errors.New("database connect failed")
	ErrMigrate = errors.New("database migration failed")
)

type Config struct {
	ConnString     string
	MigrationsPath string
}

type DB struct {
	connString     string
	migrationsPath string
	pool           *pgxpool.Pool
}

func (db *DB) Migrate(ctx context.Context) error {
	slog.InfoContext(ctx, "Running database migrations...", "path", db.migrationsPath)
	m, err := migrate.New(
		"file://"+db.migrationsPath,
		db.connString,
	)
	if err != nil {
		return err
	}
	defer m.Close()
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func Init(ctx context.Context, cfg Config) (*DB, error) {
	const fn = "DB:Init"
	pool, err := pgxpool.Connect(ctx, cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrConnect, err)
	}

	db := &DB{
		pool:           pool,
		connString:     cfg.ConnString,
		migrationsPath: cfg.MigrationsPath,
	}
	if err := db.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrMigrate, err)
	}
	return db, nil
}

func (db *DB) Name() string {
	return "postgres"
}

func (db *DB) Close() {
	db.pool.Close()
}

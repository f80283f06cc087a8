package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// NewPostgres создаёт подключение к PostgreSQL с заданным DSN.
func NewPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: не удалось подключиться: %w", err)
	}

	conn.SetMaxOpenConns(100)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(5 * time.Minute)

	return conn, nil
}

// RunMigrations применяет SQL файлы каталога в лексикографическом порядке.
// Уже применённые файлы отслеживаются в schema_migrations и пропускаются,
// каждый новый файл выполняется в собственной транзакции.
func RunMigrations(ctx context.Context, conn *sqlx.DB, migrationsDir string) error {
	_, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("postgres: таблица миграций: %w", err)
	}

	var appliedNames []string
	if err := conn.SelectContext(ctx, &appliedNames, `SELECT name FROM schema_migrations`); err != nil {
		return fmt.Errorf("postgres: список применённых миграций: %w", err)
	}
	applied := make(map[string]struct{}, len(appliedNames))
	for _, name := range appliedNames {
		applied[name] = struct{}{}
	}

	paths, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("postgres: каталог миграций: %w", err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		name := filepath.Base(path)
		if _, ok := applied[name]; ok {
			continue
		}
		if err := applyMigration(ctx, conn, path, name); err != nil {
			return err
		}
	}

	return nil
}

func applyMigration(ctx context.Context, conn *sqlx.DB, path, name string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("postgres: миграция %s: %w", name, err)
	}

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: миграция %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(raw)); err != nil {
		return fmt.Errorf("postgres: миграция %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("postgres: миграция %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: миграция %s: %w", name, err)
	}
	return nil
}

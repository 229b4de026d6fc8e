// AngelaMos | 2026
// migrate.go

package core

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is portable between PostgreSQL and SQLite. Timestamps are always
// supplied by the application.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'client'
		              CHECK (role IN ('client', 'admin', 'superadmin')),
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price       INTEGER NOT NULL CHECK (price >= 0),
		size        TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT '',
		image_url   TEXT NOT NULL DEFAULT '',
		quantity    INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		created_at  TIMESTAMP NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_title ON items (title)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		item_id    TEXT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
		quantity   INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cart_items_user_item ON cart_items (user_id, item_id)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		item_id    TEXT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id           TEXT PRIMARY KEY,
		user_id      TEXT REFERENCES users (id) ON DELETE SET NULL,
		item_id      TEXT REFERENCES items (id) ON DELETE SET NULL,
		quantity     INTEGER NOT NULL CHECK (quantity >= 1),
		total_amount INTEGER NOT NULL CHECK (total_amount >= 0),
		created_at   TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_user ON sales (user_id)`,
}

func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}

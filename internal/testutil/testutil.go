// AngelaMos | 2026
// testutil.go

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/RaulRamazanov/Shop/internal/config"
	"github.com/RaulRamazanov/Shop/internal/core"
)

const JWTSecret = "test-secret-that-is-long-enough-for-hs256"

// OpenDB opens a private in-memory SQLite database with the schema
// applied. It is closed when the test ends.
func OpenDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() +
		"?mode=memory&cache=shared&_pragma=foreign_keys(1)"

	db, err := sqlx.Open(core.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := core.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func JWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            JWTSecret,
		AccessTokenExpire: 30 * time.Minute,
		Issuer:            "shop-test",
		Audience:          "shop-test-web",
	}
}

func CookieConfig() config.CookieConfig {
	return config.CookieConfig{
		Name:     "access_token",
		Path:     "/",
		SameSite: "lax",
	}
}

// InsertItem writes a catalog row directly and returns its id.
func InsertItem(t *testing.T, db *sqlx.DB, title string, price int64) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := db.Exec(
		`INSERT INTO items (id, title, price, quantity, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, title, price, 5, now, now,
	)
	if err != nil {
		t.Fatalf("insert item: %v", err)
	}

	return id
}

// InsertUser writes a user row with an unusable password hash.
func InsertUser(t *testing.T, db *sqlx.DB, username, role string) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := db.Exec(
		`INSERT INTO users (id, username, email, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, username, username+"@example.com", "x", role, now, now,
	)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}

	return id
}

// CountRows returns the number of rows in table matching where.
func CountRows(t *testing.T, db *sqlx.DB, table, where string, args ...any) int {
	t.Helper()

	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM "+table+" WHERE "+where, args...); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}

	return n
}

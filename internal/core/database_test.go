// AngelaMos | 2026
// database_test.go

package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/testutil"
)

func TestIsDuplicateKey_SQLite(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.InsertUser(t, db, "alice", "client")

	now := time.Now().UTC()
	_, err := db.Exec(
		`INSERT INTO users (id, username, email, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"other-id", "alice", "other@example.com", "x", "client", now, now,
	)
	if err == nil {
		t.Fatalf("expected unique violation")
	}
	if !core.IsDuplicateKey(err) {
		t.Fatalf("IsDuplicateKey(%v) = false", err)
	}

	if core.IsDuplicateKey(errors.New("connection refused")) {
		t.Fatalf("unrelated error reported as duplicate")
	}
	if core.IsDuplicateKey(nil) {
		t.Fatalf("nil reported as duplicate")
	}
}

func TestIsForeignKeyViolation_SQLite(t *testing.T) {
	db := testutil.OpenDB(t)
	userID := testutil.InsertUser(t, db, "alice", "client")

	_, err := db.Exec(
		`INSERT INTO favorites (id, user_id, item_id, created_at) VALUES (?, ?, ?, ?)`,
		"fav-1", userID, "no-such-item", time.Now().UTC(),
	)
	if err == nil {
		t.Fatalf("expected foreign key violation")
	}
	if !core.IsForeignKeyViolation(err) {
		t.Fatalf("IsForeignKeyViolation(%v) = false", err)
	}
	if core.IsDuplicateKey(err) {
		t.Fatalf("foreign key violation reported as duplicate")
	}
	if core.IsForeignKeyViolation(errors.New("connection refused")) || core.IsForeignKeyViolation(nil) {
		t.Fatalf("unrelated error reported as foreign key violation")
	}
}

func TestInTx_RollsBackOnError(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := core.InTx(ctx, db, func(tx *sqlx.Tx) error {
		now := time.Now().UTC()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, title, price, quantity, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			"tx-item", "Hat", 100, 1, now, now,
		); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if n := testutil.CountRows(t, db, "items", "id = ?", "tx-item"); n != 0 {
		t.Fatalf("rolled back insert is visible: %d rows", n)
	}
}

func TestInTx_Commits(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	err := core.InTx(ctx, db, func(tx *sqlx.Tx) error {
		now := time.Now().UTC()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, title, price, quantity, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			"tx-item", "Hat", 100, 1, now, now,
		)
		return err
	})
	if err != nil {
		t.Fatalf("InTx: %v", err)
	}

	if n := testutil.CountRows(t, db, "items", "id = ?", "tx-item"); n != 1 {
		t.Fatalf("committed insert missing: %d rows", n)
	}
}

func TestMigrate_EnforcesChecks(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	_, err := db.Exec(
		`INSERT INTO items (id, title, price, quantity, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"neg", "Bad", -1, 0, now, now,
	)
	if err == nil {
		t.Fatalf("negative price accepted")
	}

	if err := core.Migrate(context.Background(), db); err != nil {
		t.Fatalf("second migrate must be a no-op: %v", err)
	}
}

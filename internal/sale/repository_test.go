// AngelaMos | 2026
// repository_test.go

package sale

import (
	"context"
	"errors"
	"testing"

	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/testutil"
)

func ptr(s string) *string { return &s }

func TestRepository_CreateAndList(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := testutil.InsertUser(t, db, "alice", "client")
	bob := testutil.InsertUser(t, db, "bob", "client")
	itemID := testutil.InsertItem(t, db, "Coat", 20000)

	for _, s := range []*Sale{
		{UserID: ptr(alice), ItemID: ptr(itemID), Quantity: 1, TotalAmount: 20000},
		{UserID: ptr(alice), ItemID: ptr(itemID), Quantity: 2, TotalAmount: 40000},
		{UserID: ptr(bob), ItemID: ptr(itemID), Quantity: 1, TotalAmount: 20000},
	} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("create: %v", err)
		}
		if s.ID == "" {
			t.Fatalf("create did not assign an id")
		}
	}

	mine, err := repo.ListByUser(ctx, alice)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("alice sales = %d, want 2", len(mine))
	}
	if mine[0].ItemTitle == nil || *mine[0].ItemTitle != "Coat" {
		t.Fatalf("item title not joined: %+v", mine[0])
	}

	page, total, err := repo.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("total=%d page=%d", total, len(page))
	}
}

func TestRepository_CreateRejectsInvalid(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewRepository(db)

	tests := []struct {
		name string
		sale Sale
	}{
		{"zero quantity", Sale{Quantity: 0, TotalAmount: 100}},
		{"negative total", Sale{Quantity: 1, TotalAmount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.sale
			if err := repo.Create(context.Background(), &s); !errors.Is(err, core.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestRepository_SurvivesItemDeletion(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := testutil.InsertUser(t, db, "alice", "client")
	itemID := testutil.InsertItem(t, db, "Gloves", 700)

	if err := repo.Create(ctx, &Sale{UserID: ptr(alice), ItemID: ptr(itemID), Quantity: 1, TotalAmount: 700}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := db.Exec(`UPDATE sales SET item_id = NULL WHERE item_id = ?`, itemID); err != nil {
		t.Fatalf("detach: %v", err)
	}
	if _, err := db.Exec(`DELETE FROM items WHERE id = ?`, itemID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	sales, err := repo.ListByUser(ctx, alice)
	if err != nil || len(sales) != 1 {
		t.Fatalf("err=%v sales=%+v", err, sales)
	}
	if sales[0].ItemID != nil || sales[0].ItemTitle != nil {
		t.Fatalf("expected detached sale, got %+v", sales[0])
	}
}

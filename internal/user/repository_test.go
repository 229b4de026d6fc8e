// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/testutil"
)

func newUser(username string) *User {
	return &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: "hash",
		Role:         RoleClient,
	}
}

func TestRepository_CRUD(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	u := newUser("alice")
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByUsername(ctx, "alice")
	if err != nil || got.ID != u.ID {
		t.Fatalf("get by username: %v %+v", err, got)
	}

	got, err = repo.GetByEmail(ctx, "alice@x.com")
	if err != nil || got.ID != u.ID {
		t.Fatalf("get by email: %v %+v", err, got)
	}

	got.Role = RoleAdmin
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err = repo.GetByID(ctx, u.ID)
	if err != nil || got.Role != RoleAdmin {
		t.Fatalf("role not updated: %v %+v", err, got)
	}

	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, u.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
	if err := repo.Delete(ctx, u.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestRepository_UniqueUsernameAndEmail(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, newUser("alice")); err != nil {
		t.Fatalf("create: %v", err)
	}

	dupName := newUser("alice")
	dupName.Email = "other@x.com"
	if err := repo.Create(ctx, dupName); !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("duplicate username: %v", err)
	}

	dupEmail := newUser("bob")
	dupEmail.Email = "alice@x.com"
	if err := repo.Create(ctx, dupEmail); !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("duplicate email: %v", err)
	}
}

func TestRepository_List(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, name := range []string{"alice", "albert", "bob"} {
		if err := repo.Create(ctx, newUser(name)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	testutil.InsertUser(t, db, "root", RoleSuperadmin)

	users, total, err := repo.List(ctx, ListUsersParams{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 4 || len(users) != 2 {
		t.Fatalf("total=%d len=%d", total, len(users))
	}

	users, total, err = repo.List(ctx, ListUsersParams{Search: "AL"})
	if err != nil || total != 2 || len(users) != 2 {
		t.Fatalf("search: err=%v total=%d len=%d", err, total, len(users))
	}

	users, total, err = repo.List(ctx, ListUsersParams{Role: RoleSuperadmin})
	if err != nil || total != 1 || users[0].Username != "root" {
		t.Fatalf("role filter: err=%v total=%d users=%+v", err, total, users)
	}

	_, total, err = repo.List(ctx, ListUsersParams{Search: "%"})
	if err != nil || total != 0 {
		t.Fatalf("wildcard must be literal: err=%v total=%d", err, total)
	}
}

func TestService_DeleteUserRemovesDependents(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db, NewRepository(db))
	ctx := context.Background()

	userID := testutil.InsertUser(t, db, "carol", RoleClient)
	itemID := testutil.InsertItem(t, db, "Scarf", 1500)

	if _, err := db.Exec(
		`INSERT INTO cart_items (id, user_id, item_id, quantity, created_at) VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP)`,
		uuid.NewString(), userID, itemID,
	); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO favorites (id, user_id, item_id, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		uuid.NewString(), userID, itemID,
	); err != nil {
		t.Fatalf("seed favorite: %v", err)
	}

	if err := svc.DeleteUser(ctx, userID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if n := testutil.CountRows(t, db, "cart_items", "user_id = ?", userID); n != 0 {
		t.Fatalf("cart rows left: %d", n)
	}
	if n := testutil.CountRows(t, db, "favorites", "user_id = ?", userID); n != 0 {
		t.Fatalf("favorites left: %d", n)
	}
	if n := testutil.CountRows(t, db, "items", "id = ?", itemID); n != 1 {
		t.Fatalf("item must survive user deletion")
	}
}

func TestService_UpdateUser(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db, NewRepository(db))
	ctx := context.Background()

	userID := testutil.InsertUser(t, db, "dave", RoleClient)
	testutil.InsertUser(t, db, "erin", RoleClient)

	role := RoleAdmin
	password := "newpass123"
	updated, err := svc.UpdateUser(ctx, userID, UpdateUserRequest{Role: &role, Password: &password})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != RoleAdmin {
		t.Fatalf("role = %q", updated.Role)
	}
	ok, err := core.VerifyPassword(password, updated.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("password not rehashed: ok=%v err=%v", ok, err)
	}

	taken := "erin"
	if _, err := svc.UpdateUser(ctx, userID, UpdateUserRequest{Username: &taken}); !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("rename onto existing user: %v", err)
	}

	bad := "owner"
	if _, err := svc.UpdateUser(ctx, userID, UpdateUserRequest{Role: &bad}); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("invalid role: %v", err)
	}

	if _, err := svc.UpdateUser(ctx, "missing", UpdateUserRequest{Role: &role}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("missing user: %v", err)
	}
}

func TestService_LoadIdentity(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db, NewRepository(db))
	ctx := context.Background()

	userID := testutil.InsertUser(t, db, "frank", RoleSuperadmin)

	identity, err := svc.LoadIdentity(ctx, userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if identity.Username != "frank" || identity.Role != RoleSuperadmin {
		t.Fatalf("identity = %+v", identity)
	}

	if _, err := svc.LoadIdentity(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("missing user: %v", err)
	}
}

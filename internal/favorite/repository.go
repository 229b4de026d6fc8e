// AngelaMos | 2026
// repository.go

package favorite

import (
	"context"
	"fmt"
	"time"

	"github.com/RaulRamazanov/Shop/internal/core"
)

type Repository interface {
	Add(ctx context.Context, fav *Favorite) error
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
	Remove(ctx context.Context, userID, itemID string) (int64, error)
	ItemExists(ctx context.Context, itemID string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Add maps a dangling item reference to core.ErrNotFound, which covers an
// item deleted after the existence check.
func (r *repository) Add(ctx context.Context, fav *Favorite) error {
	fav.CreatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		INSERT INTO favorites (id, user_id, item_id, created_at)
		VALUES (?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, fav.ID, fav.UserID, fav.ItemID, fav.CreatedAt)
	switch {
	case err == nil:
		return nil
	case core.IsDuplicateKey(err):
		return fmt.Errorf("add favorite: %w", core.ErrDuplicateKey)
	case core.IsForeignKeyViolation(err):
		return fmt.Errorf("add favorite: item: %w", core.ErrNotFound)
	default:
		return fmt.Errorf("add favorite: %w", err)
	}
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Entry, error) {
	query := r.db.Rebind(`
		SELECT f.item_id, i.title, i.price, i.image_url, f.created_at
		FROM favorites f
		JOIN items i ON i.id = f.item_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, f.id`)

	entries := []Entry{}
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return entries, nil
}

func (r *repository) Remove(
	ctx context.Context,
	userID, itemID string,
) (int64, error) {
	query := r.db.Rebind(`DELETE FROM favorites WHERE user_id = ? AND item_id = ?`)

	result, err := r.db.ExecContext(ctx, query, userID, itemID)
	if err != nil {
		return 0, fmt.Errorf("remove favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("remove favorite: %w", err)
	}

	return rows, nil
}

func (r *repository) ItemExists(ctx context.Context, itemID string) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM items WHERE id = ?`)

	var count int
	if err := r.db.GetContext(ctx, &count, query, itemID); err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}

	return count > 0, nil
}

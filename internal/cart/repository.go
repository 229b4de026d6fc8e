// AngelaMos | 2026
// repository.go

package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/RaulRamazanov/Shop/internal/core"
)

type Repository interface {
	Add(ctx context.Context, item *CartItem) error
	ListByUser(ctx context.Context, userID string) ([]Line, error)
	RemoveItem(ctx context.Context, userID, itemID string) (int64, error)
	ItemExists(ctx context.Context, itemID string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, item *CartItem) error {
	item.CreatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		INSERT INTO cart_items (id, user_id, item_id, quantity, created_at)
		VALUES (?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.UserID,
		item.ItemID,
		item.Quantity,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Line, error) {
	query := r.db.Rebind(`
		SELECT c.id AS cart_item_id, c.item_id, i.title, i.price, i.image_url,
		       c.quantity, c.created_at
		FROM cart_items c
		JOIN items i ON i.id = c.item_id
		WHERE c.user_id = ?
		ORDER BY c.created_at, c.id`)

	lines := []Line{}
	if err := r.db.SelectContext(ctx, &lines, query, userID); err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}

	return lines, nil
}

// RemoveItem deletes every row the user holds for itemID and reports how
// many were removed.
func (r *repository) RemoveItem(
	ctx context.Context,
	userID, itemID string,
) (int64, error) {
	query := r.db.Rebind(`DELETE FROM cart_items WHERE user_id = ? AND item_id = ?`)

	result, err := r.db.ExecContext(ctx, query, userID, itemID)
	if err != nil {
		return 0, fmt.Errorf("remove cart item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("remove cart item: %w", err)
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

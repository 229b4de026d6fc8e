// AngelaMos | 2026
// repository.go

package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RaulRamazanov/Shop/internal/core"
)

type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams) ([]Item, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const itemColumns = `id, title, description, price, size, color, image_url,
	quantity, created_at, updated_at`

func (r *repository) Create(ctx context.Context, item *Item) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO items (id, title, description, price, size, color, image_url,
		                   quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Description,
		item.Price,
		item.Size,
		item.Color,
		item.ImageURL,
		item.Quantity,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Item, error) {
	query := r.db.Rebind("SELECT " + itemColumns + " FROM items WHERE id = ?")

	var item Item
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get item: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	return &item, nil
}

func (r *repository) Update(ctx context.Context, item *Item) error {
	item.UpdatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE items
		SET title = ?, description = ?, price = ?, size = ?, color = ?,
		    image_url = ?, quantity = ?, updated_at = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		item.Title,
		item.Description,
		item.Price,
		item.Size,
		item.Color,
		item.ImageURL,
		item.Quantity,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	return expectAffected(result, "update item")
}

// Delete removes the item along with cart rows and favorites that point
// at it. Sales keep their row with a null item. Callers run it inside a
// transaction.
func (r *repository) Delete(ctx context.Context, id string) error {
	cleanup := []string{
		`DELETE FROM cart_items WHERE item_id = ?`,
		`DELETE FROM favorites WHERE item_id = ?`,
		`UPDATE sales SET item_id = NULL WHERE item_id = ?`,
	}

	for _, stmt := range cleanup {
		if _, err := r.db.ExecContext(ctx, r.db.Rebind(stmt), id); err != nil {
			return fmt.Errorf("delete item dependents: %w", err)
		}
	}

	result, err := r.db.ExecContext(
		ctx,
		r.db.Rebind(`DELETE FROM items WHERE id = ?`),
		id,
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	return expectAffected(result, "delete item")
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Item, error) {
	params.Normalize()

	query := r.db.Rebind(`
		SELECT ` + itemColumns + `
		FROM items
		ORDER BY created_at, id
		LIMIT ? OFFSET ?`)

	items := []Item{}
	if err := r.db.SelectContext(ctx, &items, query, params.Limit, params.Skip); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM items`); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return total, nil
}

func expectAffected(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

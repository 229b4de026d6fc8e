// AngelaMos | 2026
// repository.go

package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RaulRamazanov/Shop/internal/core"
)

type Repository interface {
	Create(ctx context.Context, sale *Sale) error
	ListByUser(ctx context.Context, userID string) ([]Sale, error)
	List(ctx context.Context, limit, offset int) ([]Sale, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Create records a purchase. Nothing in the HTTP surface calls it.
func (r *repository) Create(ctx context.Context, sale *Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.Quantity < 1 || sale.TotalAmount < 0 {
		return fmt.Errorf("create sale: %w", core.ErrInvalidInput)
	}
	sale.CreatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		INSERT INTO sales (id, user_id, item_id, quantity, total_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		sale.ID,
		sale.UserID,
		sale.ItemID,
		sale.Quantity,
		sale.TotalAmount,
		sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}

	return nil
}

const saleSelect = `
	SELECT s.id, s.user_id, s.item_id, i.title AS item_title,
	       s.quantity, s.total_amount, s.created_at
	FROM sales s
	LEFT JOIN items i ON i.id = s.item_id`

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Sale, error) {
	query := r.db.Rebind(saleSelect + `
	WHERE s.user_id = ?
	ORDER BY s.created_at DESC, s.id`)

	sales := []Sale{}
	if err := r.db.SelectContext(ctx, &sales, query, userID); err != nil {
		return nil, fmt.Errorf("list user sales: %w", err)
	}

	return sales, nil
}

func (r *repository) List(
	ctx context.Context,
	limit, offset int,
) ([]Sale, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM sales`); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := r.db.Rebind(saleSelect + `
	ORDER BY s.created_at DESC, s.id
	LIMIT ? OFFSET ?`)

	sales := []Sale{}
	if err := r.db.SelectContext(ctx, &sales, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}

	return sales, total, nil
}

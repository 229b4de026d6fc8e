// AngelaMos | 2026
// service.go

package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/RaulRamazanov/Shop/internal/core"
)

type Service struct {
	db   *sqlx.DB
	repo Repository
}

func NewService(db *sqlx.DB, repo Repository) *Service {
	return &Service{db: db, repo: repo}
}

// AddToCart always inserts a new row, even when the user already holds
// the same item.
func (s *Service) AddToCart(
	ctx context.Context,
	userID string,
	req AddToCartRequest,
) (*CartItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("add to cart: %w", core.ErrUnauthorized)
	}

	quantity := req.QuantityOrDefault()
	if quantity < 1 {
		return nil, fmt.Errorf("add to cart: quantity %d: %w", quantity, core.ErrInvalidInput)
	}

	row := &CartItem{
		ID:       uuid.New().String(),
		UserID:   userID,
		ItemID:   req.ItemID,
		Quantity: quantity,
	}

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		exists, err := repo.ItemExists(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("add to cart: item: %w", core.ErrNotFound)
		}

		return repo.Add(ctx, row)
	})
	if err != nil {
		return nil, err
	}

	core.AddSpanEvent(ctx, "cart.item_added",
		attribute.String("cart_item.id", row.ID),
		attribute.Int("cart_item.quantity", row.Quantity),
	)

	return row, nil
}

func (s *Service) ViewCart(ctx context.Context, userID string) ([]Line, error) {
	if userID == "" {
		return nil, fmt.Errorf("view cart: %w", core.ErrUnauthorized)
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) RemoveFromCart(
	ctx context.Context,
	userID, itemID string,
) error {
	if userID == "" {
		return fmt.Errorf("remove from cart: %w", core.ErrUnauthorized)
	}

	removed, err := s.repo.RemoveItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if removed == 0 {
		return fmt.Errorf("remove from cart: %w", core.ErrNotFound)
	}

	return nil
}

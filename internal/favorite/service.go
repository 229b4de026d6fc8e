// AngelaMos | 2026
// service.go

package favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/RaulRamazanov/Shop/internal/core"
)

type Service struct {
	db   *sqlx.DB
	repo Repository
}

func NewService(db *sqlx.DB, repo Repository) *Service {
	return &Service{db: db, repo: repo}
}

// Add is idempotent: favoriting an item twice leaves one row.
func (s *Service) Add(ctx context.Context, userID, itemID string) error {
	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		exists, err := repo.ItemExists(ctx, itemID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("add favorite: item: %w", core.ErrNotFound)
		}

		return repo.Add(ctx, &Favorite{
			ID:     uuid.New().String(),
			UserID: userID,
			ItemID: itemID,
		})
	})
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil
	}

	return err
}

func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, itemID string) error {
	removed, err := s.repo.Remove(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if removed == 0 {
		return fmt.Errorf("remove favorite: %w", core.ErrNotFound)
	}

	return nil
}

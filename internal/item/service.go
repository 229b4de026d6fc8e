// AngelaMos | 2026
// service.go

package item

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/RaulRamazanov/Shop/internal/core"
)

type Service struct {
	db    *sqlx.DB
	repo  Repository
	cache *CatalogCache
}

func NewService(db *sqlx.DB, repo Repository, cache *CatalogCache) *Service {
	return &Service{db: db, repo: repo, cache: cache}
}

func (s *Service) CreateItem(
	ctx context.Context,
	req CreateItemRequest,
) (*Item, error) {
	item := &Item{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Size:        req.Size,
		Color:       req.Color,
		ImageURL:    req.ImageURL,
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateItem(
	ctx context.Context,
	id string,
	req UpdateItemRequest,
) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Size != nil {
		item.Size = *req.Size
	}
	if req.Color != nil {
		item.Color = *req.Color
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return NewRepository(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) ListItems(
	ctx context.Context,
	params ListParams,
) ([]ItemResponse, error) {
	params.Normalize()

	if cached, ok := s.cache.Get(ctx, params); ok {
		return cached, nil
	}

	items, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	resp := ToItemResponseList(items)
	s.cache.Set(ctx, params, resp)

	return resp, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

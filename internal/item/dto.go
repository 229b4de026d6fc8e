// AngelaMos | 2026
// dto.go

package item

import (
	"time"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type CreateItemRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Price       int64  `json:"price"       validate:"gte=0"`
	Size        string `json:"size"        validate:"max=50"`
	Color       string `json:"color"       validate:"max=50"`
	ImageURL    string `json:"image_url"   validate:"omitempty,max=500"`
	Quantity    *int   `json:"quantity"    validate:"omitempty,gte=0"`
}

type UpdateItemRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *int64  `json:"price,omitempty"       validate:"omitempty,gte=0"`
	Size        *string `json:"size,omitempty"        validate:"omitempty,max=50"`
	Color       *string `json:"color,omitempty"       validate:"omitempty,max=50"`
	ImageURL    *string `json:"image_url,omitempty"   validate:"omitempty,max=500"`
	Quantity    *int    `json:"quantity,omitempty"    validate:"omitempty,gte=0"`
}

type ItemResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Size        string    `json:"size"`
	Color       string    `json:"color"`
	ImageURL    string    `json:"image_url"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ListParams is the skip/limit window used by GET /items/.
type ListParams struct {
	Skip  int
	Limit int
}

func (p *ListParams) Normalize() {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

func ToItemResponse(i *Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		Price:       i.Price,
		Size:        i.Size,
		Color:       i.Color,
		ImageURL:    i.ImageURL,
		Quantity:    i.Quantity,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func ToItemResponseList(items []Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		responses = append(responses, ToItemResponse(&i))
	}
	return responses
}

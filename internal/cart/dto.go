// AngelaMos | 2026
// dto.go

package cart

type AddToCartRequest struct {
	ItemID   string `json:"item_id"  validate:"required,max=64"`
	Quantity *int   `json:"quantity" validate:"omitempty,gte=1,lte=1000"`
}

func (r AddToCartRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

type AddToCartResponse struct {
	CartItemID string `json:"cart_item_id"`
}

type LineResponse struct {
	CartItemID string `json:"cart_item_id"`
	ItemID     string `json:"item_id"`
	Title      string `json:"title"`
	Price      int64  `json:"price"`
	ImageURL   string `json:"image_url"`
	Quantity   int    `json:"quantity"`
	Subtotal   int64  `json:"subtotal"`
}

type CartResponse struct {
	Items []LineResponse `json:"items"`
	Total int64          `json:"total"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func ToCartResponse(lines []Line) CartResponse {
	resp := CartResponse{Items: make([]LineResponse, 0, len(lines))}

	for _, l := range lines {
		subtotal := l.Subtotal()
		resp.Items = append(resp.Items, LineResponse{
			CartItemID: l.CartItemID,
			ItemID:     l.ItemID,
			Title:      l.Title,
			Price:      l.Price,
			ImageURL:   l.ImageURL,
			Quantity:   l.Quantity,
			Subtotal:   subtotal,
		})
		resp.Total += subtotal
	}

	return resp
}

// AngelaMos | 2026
// entity.go

package cart

import (
	"time"
)

// CartItem is an unpurchased reservation. Several rows may exist for the
// same user and item.
type CartItem struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ItemID    string    `db:"item_id"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
}

// Line is a cart row joined with the item it points at.
type Line struct {
	CartItemID string    `db:"cart_item_id"`
	ItemID     string    `db:"item_id"`
	Title      string    `db:"title"`
	Price      int64     `db:"price"`
	ImageURL   string    `db:"image_url"`
	Quantity   int       `db:"quantity"`
	CreatedAt  time.Time `db:"created_at"`
}

func (l *Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

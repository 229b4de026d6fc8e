// AngelaMos | 2026
// entity.go

package item

import (
	"time"
)

// Item is a catalog product. Price is in minor currency units and
// Quantity is the stock count.
type Item struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Price       int64     `db:"price"`
	Size        string    `db:"size"`
	Color       string    `db:"color"`
	ImageURL    string    `db:"image_url"`
	Quantity    int       `db:"quantity"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (i *Item) InStock() bool {
	return i.Quantity > 0
}
